package repository

import (
	"context"

	"mailflow/internal/model"
)

// EmailRepository defines data operations for ingested emails.
type EmailRepository interface {
	Create(ctx context.Context, email *model.EmailMessage) error
	FindByID(ctx context.Context, id string) (*model.EmailMessage, error)
	FindByMessageID(ctx context.Context, tenantID, messageID string) (*model.EmailMessage, error)
	FindByMailbox(ctx context.Context, tenantID, mailboxID string) ([]*model.EmailMessage, error)
	FindByCategoryID(ctx context.Context, tenantID, categoryID string) ([]*model.EmailMessage, error)
	Update(ctx context.Context, email *model.EmailMessage) error
	UpdateVipStatus(ctx context.Context, id string, isVip bool) error
	Delete(ctx context.Context, id string) error
}

// RuleRepository defines data operations for classification rules. The
// pipeline itself only reads rules; writes come from the admin CRUD surface.
type RuleRepository interface {
	Create(ctx context.Context, rule *model.ClassificationRule) error
	FindByID(ctx context.Context, id string) (*model.ClassificationRule, error)
	// FindActiveByTenant returns active rules ordered by priority descending,
	// ties broken by rule id ascending.
	FindActiveByTenant(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error)
	FindByTenant(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error)
	Update(ctx context.Context, rule *model.ClassificationRule) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines data operations for email categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.EmailCategory) error
	FindByID(ctx context.Context, id string) (*model.EmailCategory, error)
	// FindAvailable returns active categories visible to the mailbox (scoped
	// to it or tenant-global), ordered by priority descending, ties broken by
	// category id ascending.
	FindAvailable(ctx context.Context, tenantID, mailboxID string) ([]*model.EmailCategory, error)
	FindByTenant(ctx context.Context, tenantID string) ([]*model.EmailCategory, error)
	Update(ctx context.Context, category *model.EmailCategory) error
	Delete(ctx context.Context, id string) error
}

// ClassificationRepository persists resolver output. Insert-only.
type ClassificationRepository interface {
	Create(ctx context.Context, classification *model.Classification) error
	FindByEmailID(ctx context.Context, emailID string) ([]*model.Classification, error)
}

// VipRepository defines data operations for VIP sender addresses.
type VipRepository interface {
	Create(ctx context.Context, vip *model.VipAddress) error
	// FindActiveByAddress looks up an active VIP entry for the tenant and
	// lowercased address. Returns (nil, nil) when no entry exists.
	FindActiveByAddress(ctx context.Context, tenantID, emailAddress string) (*model.VipAddress, error)
	FindByTenant(ctx context.Context, tenantID string) ([]*model.VipAddress, error)
	Delete(ctx context.Context, id string) error
}

// MailboxRepository reads monitored mailboxes. Mailbox lifecycle is managed
// by an external collaborator.
type MailboxRepository interface {
	Create(ctx context.Context, mailbox *model.Mailbox) error
	FindByID(ctx context.Context, id string) (*model.Mailbox, error)
	FindByTenant(ctx context.Context, tenantID string) ([]*model.Mailbox, error)
}
