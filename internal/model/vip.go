package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VipAddress marks a sender as important for one tenant. The address is
// stored lowercased so lookups are case-insensitive.
type VipAddress struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	EmailAddress string    `json:"email_address"`
	Label        string    `json:"label,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewVipAddress(tenantID, emailAddress, label string) *VipAddress {
	now := time.Now()
	return &VipAddress{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		EmailAddress: strings.ToLower(strings.TrimSpace(emailAddress)),
		Label:        label,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
