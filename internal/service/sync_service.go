package service

import (
	"context"
	"fmt"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/repository"
)

type syncService struct {
	mailboxRepo repository.MailboxRepository
	emailRepo   repository.EmailRepository
	mailSource  MailSource
	classifier  ClassifierService
	vipService  VipService
	maxResults  int
	logger      *logger.Logger
}

func NewSyncService(
	mailboxRepo repository.MailboxRepository,
	emailRepo repository.EmailRepository,
	mailSource MailSource,
	classifier ClassifierService,
	vipService VipService,
	logger *logger.Logger,
) SyncService {
	return &syncService{
		mailboxRepo: mailboxRepo,
		emailRepo:   emailRepo,
		mailSource:  mailSource,
		classifier:  classifier,
		vipService:  vipService,
		maxResults:  25,
		logger:      logger,
	}
}

// SyncMailbox pulls recent messages for one mailbox, stores the ones not
// seen before, classifies each and refreshes VIP flags on the stored batch.
// A single message failing to classify is logged and skipped so the rest of
// the pass still lands.
func (s *syncService) SyncMailbox(ctx context.Context, mailboxID string) (*SyncResult, error) {
	mailbox, err := s.mailboxRepo.FindByID(ctx, mailboxID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mailbox: %w", err)
	}

	messages, err := s.mailSource.ListRecentMessages(ctx, mailbox.EmailAddress, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for %s: %w", mailbox.EmailAddress, err)
	}

	result := &SyncResult{Fetched: len(messages)}
	var stored []*model.EmailMessage

	for _, email := range messages {
		email.TenantID = mailbox.TenantID
		email.MailboxID = mailbox.ID

		existing, err := s.emailRepo.FindByMessageID(ctx, mailbox.TenantID, email.MessageID)
		if err == nil && existing != nil {
			result.Skipped++
			continue
		}

		if err := s.emailRepo.Create(ctx, email); err != nil {
			s.logger.Error("Failed to store email:", email.MessageID, err)
			result.Failed++
			continue
		}
		result.Stored++
		stored = append(stored, email)

		if _, err := s.classifier.ClassifyEmail(ctx, email, mailbox.TenantID, mailbox.ID); err != nil {
			s.logger.Error("Failed to classify email:", email.ID, err)
			email.ProcessingStatus = model.ProcessingStatusFailed
			result.Failed++
		} else {
			email.ProcessingStatus = model.ProcessingStatusClassified
			result.Classified++
		}
		if err := s.emailRepo.Update(ctx, email); err != nil {
			s.logger.Error("Failed to update email status:", email.ID, err)
		}
	}

	if len(stored) > 0 {
		if _, err := s.vipService.UpdateVipStatus(ctx, stored); err != nil {
			s.logger.Error("VIP pass failed for mailbox:", mailbox.ID, err)
		}
	}

	s.logger.Info("Synced mailbox:", mailbox.ID, "stored:", result.Stored, "classified:", result.Classified)
	return result, nil
}
