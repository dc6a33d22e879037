package ai

import (
	"context"

	"mailflow/internal/model"
	"mailflow/internal/service"
)

// MockEvaluator is a mock implementation of service.ConditionEvaluator for
// testing.
type MockEvaluator struct {
	EvaluateConditionFunc func(ctx context.Context, condition string, email *model.EmailMessage) (*service.ConditionResult, error)
}

func NewMockEvaluator() *MockEvaluator {
	return &MockEvaluator{}
}

func (m *MockEvaluator) EvaluateCondition(ctx context.Context, condition string, email *model.EmailMessage) (*service.ConditionResult, error) {
	if m.EvaluateConditionFunc != nil {
		return m.EvaluateConditionFunc(ctx, condition, email)
	}

	// Default mock behavior: the condition does not hold.
	return &service.ConditionResult{
		MeetsCondition: false,
		Confidence:     1.0,
		Reasoning:      "mock evaluator default",
	}, nil
}
