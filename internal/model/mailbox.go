package model

import (
	"time"

	"github.com/google/uuid"
)

// Mailbox is a monitored account belonging to a tenant. Lifecycle management
// (connect, disconnect, token refresh) happens outside this service; the
// pipeline only reads mailboxes to scope categories and drive syncs.
type Mailbox struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	EmailAddress string    `json:"email_address"`
	DisplayName  string    `json:"display_name"`
	Provider     string    `json:"provider"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewMailbox(tenantID, emailAddress, displayName, provider string) *Mailbox {
	now := time.Now()
	return &Mailbox{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		EmailAddress: emailAddress,
		DisplayName:  displayName,
		Provider:     provider,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
