package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailCategory is a tenant-scoped classification target. A nil MailboxID
// means the category applies to every mailbox of the tenant.
type EmailCategory struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	MailboxID   *string   `json:"mailbox_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewEmailCategory(tenantID string, mailboxID *string, name, description string, priority int) *EmailCategory {
	now := time.Now()
	return &EmailCategory{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		MailboxID:   mailboxID,
		Name:        name,
		Description: description,
		Priority:    priority,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
