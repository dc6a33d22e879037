package model

import (
	"time"

	"github.com/google/uuid"
)

// How a classification was produced.
const (
	MethodRule    = "rule"
	MethodAI      = "ai"
	MethodDefault = "default"
)

// ClassificationMetadata is an audit snapshot taken at classification time.
type ClassificationMetadata struct {
	SenderEmail string    `json:"sender_email"`
	Subject     string    `json:"subject"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Classification is the immutable record produced by the resolver. RuleID is
// nil when the email fell through to the default category.
type Classification struct {
	ID              string                 `json:"id"`
	TenantID        string                 `json:"tenant_id"`
	MailboxID       string                 `json:"mailbox_id"`
	EmailID         string                 `json:"email_id"`
	CategoryID      string                 `json:"category_id"`
	ConfidenceScore float64                `json:"confidence_score"`
	Method          string                 `json:"classification_method"`
	RuleID          *string                `json:"rule_id,omitempty"`
	Metadata        ClassificationMetadata `json:"metadata"`
	CreatedAt       time.Time              `json:"created_at"`
}

func NewClassification(email *EmailMessage, tenantID, mailboxID, categoryID string, confidence float64, method string, ruleID *string) *Classification {
	now := time.Now()
	return &Classification{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		MailboxID:       mailboxID,
		EmailID:         email.ID,
		CategoryID:      categoryID,
		ConfidenceScore: confidence,
		Method:          method,
		RuleID:          ruleID,
		Metadata: ClassificationMetadata{
			SenderEmail: email.SenderEmail,
			Subject:     email.Subject,
			ProcessedAt: now,
		},
		CreatedAt: now,
	}
}
