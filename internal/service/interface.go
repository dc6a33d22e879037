package service

import (
	"context"

	"mailflow/internal/model"
)

// ClassifierService resolves a category for one inbound email and records
// the result.
type ClassifierService interface {
	ClassifyEmail(ctx context.Context, email *model.EmailMessage, tenantID, mailboxID string) (*model.Classification, error)
}

// VipService maintains tenant VIP lists and applies VIP flags to batches of
// emails.
type VipService interface {
	UpdateVipStatus(ctx context.Context, emails []*model.EmailMessage) (*VipUpdateResult, error)
	AddVipAddress(ctx context.Context, tenantID, emailAddress, label string) (*model.VipAddress, error)
	GetVipAddresses(ctx context.Context, tenantID string) ([]*model.VipAddress, error)
	RemoveVipAddress(ctx context.Context, id string) error
}

// VipUpdateResult reports a batch pass. Failed counts per-item errors that
// were logged and skipped; they never abort the batch.
type VipUpdateResult struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
}

// CategoryService manages tenant email categories.
type CategoryService interface {
	CreateCategory(ctx context.Context, tenantID string, mailboxID *string, name, description string, priority int) (*model.EmailCategory, error)
	GetCategory(ctx context.Context, categoryID string) (*model.EmailCategory, error)
	GetCategories(ctx context.Context, tenantID string) ([]*model.EmailCategory, error)
	UpdateCategory(ctx context.Context, categoryID, name, description string, priority *int, isActive *bool) (*model.EmailCategory, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// RuleService manages tenant classification rules.
type RuleService interface {
	CreateRule(ctx context.Context, tenantID, categoryID, ruleType, ruleValue string, priority int) (*model.ClassificationRule, error)
	GetRule(ctx context.Context, ruleID string) (*model.ClassificationRule, error)
	GetRules(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error)
	UpdateRule(ctx context.Context, ruleID, ruleValue string, priority *int, isActive *bool) (*model.ClassificationRule, error)
	DeleteRule(ctx context.Context, ruleID string) error
}

// SyncService pulls recent messages for a mailbox, stores the new ones,
// classifies them and refreshes their VIP flags.
type SyncService interface {
	SyncMailbox(ctx context.Context, mailboxID string) (*SyncResult, error)
}

// SyncResult reports one ingestion pass over a mailbox.
type SyncResult struct {
	Fetched    int `json:"fetched"`
	Stored     int `json:"stored"`
	Classified int `json:"classified"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// ConditionResult is the normalized outcome of an AI condition evaluation.
// Confidence is always within [0,1] and MeetsCondition is always set, even
// when the backend returns garbage.
type ConditionResult struct {
	MeetsCondition bool    `json:"meetsCondition"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

// ConditionEvaluator decides whether a free-text condition holds for an
// email. A non-nil error means the backend could not be reached at all;
// unparseable responses are normalized, not surfaced.
type ConditionEvaluator interface {
	EvaluateCondition(ctx context.Context, condition string, email *model.EmailMessage) (*ConditionResult, error)
}

// MailSource lists recent messages for a mailbox address. Implemented by the
// Microsoft Graph client and by mocks in tests.
type MailSource interface {
	ListRecentMessages(ctx context.Context, mailboxAddress string, maxResults int) ([]*model.EmailMessage, error)
}
