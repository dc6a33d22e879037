package model

import (
	"time"

	"github.com/google/uuid"
)

// Rule types understood by the classification pipeline. The textual types
// are evaluated synchronously; "ai" rules go through the condition evaluator.
const (
	RuleTypeSender  = "sender"
	RuleTypeDomain  = "domain"
	RuleTypeSubject = "subject"
	RuleTypeContent = "content"
	RuleTypeAI      = "ai"
)

// KnownRuleTypes lists every rule type accepted at rule-creation time.
var KnownRuleTypes = []string{RuleTypeSender, RuleTypeDomain, RuleTypeSubject, RuleTypeContent, RuleTypeAI}

type ClassificationRule struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	CategoryID string    `json:"category_id"`
	RuleType   string    `json:"rule_type"`
	RuleValue  string    `json:"rule_value"`
	Priority   int       `json:"priority"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewClassificationRule(tenantID, categoryID, ruleType, ruleValue string, priority int) *ClassificationRule {
	now := time.Now()
	return &ClassificationRule{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CategoryID: categoryID,
		RuleType:   ruleType,
		RuleValue:  ruleValue,
		Priority:   priority,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
