package service_test

import (
	"context"
	"testing"
	"time"

	"mailflow/internal/ai"
	"mailflow/internal/graph"
	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/repository/memory"
	"mailflow/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	mailboxRepo *memory.InMemoryMailboxRepository
	emailRepo   *memory.InMemoryEmailRepository
	mailSource  *graph.MockMailSource
	syncSvc     service.SyncService

	categoryRepo       *memory.InMemoryCategoryRepository
	classificationRepo *memory.InMemoryClassificationRepository
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		mailboxRepo:        memory.NewInMemoryMailboxRepository(),
		emailRepo:          memory.NewInMemoryEmailRepository(),
		mailSource:         graph.NewMockMailSource(),
		categoryRepo:       memory.NewInMemoryCategoryRepository(),
		classificationRepo: memory.NewInMemoryClassificationRepository(),
	}
	log := logger.New()
	classifier := service.NewClassifierService(
		memory.NewInMemoryRuleRepository(), f.categoryRepo, f.classificationRepo, ai.NewMockEvaluator(), log)
	vipSvc := service.NewVipService(memory.NewInMemoryVipRepository(), f.emailRepo, log)
	f.syncSvc = service.NewSyncService(f.mailboxRepo, f.emailRepo, f.mailSource, classifier, vipSvc, log)
	return f
}

func sourceMessage(messageID, sender string) *model.EmailMessage {
	return model.NewEmailMessage("", "", messageID, sender, "", "subject", "body", time.Now())
}

func TestSyncMailboxStoresAndClassifies(t *testing.T) {
	f := newSyncFixture()

	mailbox := model.NewMailbox("tenant-1", "inbox@co.com", "Inbox", "microsoft")
	f.mailboxRepo.Create(context.Background(), mailbox)
	f.categoryRepo.Create(context.Background(), model.NewEmailCategory("tenant-1", nil, "general", "", 10))

	f.mailSource.ListRecentMessagesFunc = func(ctx context.Context, mailboxAddress string, maxResults int) ([]*model.EmailMessage, error) {
		assert.Equal(t, "inbox@co.com", mailboxAddress)
		return []*model.EmailMessage{
			sourceMessage("msg-1", "a@b.com"),
			sourceMessage("msg-2", "c@d.com"),
		}, nil
	}

	result, err := f.syncSvc.SyncMailbox(context.Background(), mailbox.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Stored)
	assert.Equal(t, 2, result.Classified)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	stored, err := f.emailRepo.FindByMailbox(context.Background(), "tenant-1", mailbox.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, email := range stored {
		assert.Equal(t, model.ProcessingStatusClassified, email.ProcessingStatus)
		assert.Equal(t, "tenant-1", email.TenantID)

		records, _ := f.classificationRepo.FindByEmailID(context.Background(), email.ID)
		assert.Len(t, records, 1)
	}
}

func TestSyncMailboxSkipsAlreadySeenMessages(t *testing.T) {
	f := newSyncFixture()

	mailbox := model.NewMailbox("tenant-1", "inbox@co.com", "Inbox", "microsoft")
	f.mailboxRepo.Create(context.Background(), mailbox)
	f.categoryRepo.Create(context.Background(), model.NewEmailCategory("tenant-1", nil, "general", "", 10))

	f.mailSource.ListRecentMessagesFunc = func(ctx context.Context, mailboxAddress string, maxResults int) ([]*model.EmailMessage, error) {
		return []*model.EmailMessage{sourceMessage("msg-1", "a@b.com")}, nil
	}

	first, err := f.syncSvc.SyncMailbox(context.Background(), mailbox.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stored)

	// The same provider message again: dedup on message id, nothing stored.
	second, err := f.syncSvc.SyncMailbox(context.Background(), mailbox.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Fetched)
	assert.Equal(t, 0, second.Stored)
	assert.Equal(t, 1, second.Skipped)
}

func TestSyncMailboxClassificationFailureKeepsEmail(t *testing.T) {
	f := newSyncFixture()

	mailbox := model.NewMailbox("tenant-1", "inbox@co.com", "Inbox", "microsoft")
	f.mailboxRepo.Create(context.Background(), mailbox)
	// No categories: every classification fails with a configuration error.

	f.mailSource.ListRecentMessagesFunc = func(ctx context.Context, mailboxAddress string, maxResults int) ([]*model.EmailMessage, error) {
		return []*model.EmailMessage{sourceMessage("msg-1", "a@b.com")}, nil
	}

	result, err := f.syncSvc.SyncMailbox(context.Background(), mailbox.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stored)
	assert.Equal(t, 0, result.Classified)
	assert.Equal(t, 1, result.Failed)

	stored, err := f.emailRepo.FindByMailbox(context.Background(), "tenant-1", mailbox.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, model.ProcessingStatusFailed, stored[0].ProcessingStatus)
}

func TestSyncMailboxUnknownMailbox(t *testing.T) {
	f := newSyncFixture()

	_, err := f.syncSvc.SyncMailbox(context.Background(), "missing")
	assert.ErrorContains(t, err, "failed to load mailbox")
}
