package graph

import (
	"context"

	"mailflow/internal/model"
)

// MockMailSource is a mock implementation of service.MailSource for testing.
type MockMailSource struct {
	ListRecentMessagesFunc func(ctx context.Context, mailboxAddress string, maxResults int) ([]*model.EmailMessage, error)
}

func NewMockMailSource() *MockMailSource {
	return &MockMailSource{}
}

func (m *MockMailSource) ListRecentMessages(ctx context.Context, mailboxAddress string, maxResults int) ([]*model.EmailMessage, error) {
	if m.ListRecentMessagesFunc != nil {
		return m.ListRecentMessagesFunc(ctx, mailboxAddress, maxResults)
	}
	return nil, nil
}
