package service_test

import (
	"testing"
	"time"

	"mailflow/internal/model"
	"mailflow/internal/service"

	"github.com/stretchr/testify/assert"
)

func testEmail(sender, subject, body string) *model.EmailMessage {
	return model.NewEmailMessage("tenant-1", "mailbox-1", "msg-1", sender, "", subject, body, time.Now())
}

func TestMatchRule(t *testing.T) {
	tests := []struct {
		name     string
		email    *model.EmailMessage
		ruleType string
		value    string
		want     bool
	}{
		{
			name:     "sender substring match",
			email:    testEmail("boss@co.com", "Hello", ""),
			ruleType: model.RuleTypeSender,
			value:    "boss@co.com",
			want:     true,
		},
		{
			name:     "sender case-insensitive",
			email:    testEmail("Boss@CO.com", "Hello", ""),
			ruleType: model.RuleTypeSender,
			value:    "boss@co.com",
			want:     true,
		},
		{
			name:     "sender partial address",
			email:    testEmail("newsletter@shop.example", "", ""),
			ruleType: model.RuleTypeSender,
			value:    "newsletter@",
			want:     true,
		},
		{
			name:     "sender no match",
			email:    testEmail("someone@elsewhere.com", "", ""),
			ruleType: model.RuleTypeSender,
			value:    "boss@co.com",
			want:     false,
		},
		{
			name:     "domain exact match case-insensitive",
			email:    testEmail("Billing@ACME.com", "", ""),
			ruleType: model.RuleTypeDomain,
			value:    "acme.com",
			want:     true,
		},
		{
			name:     "domain does not match subdomain",
			email:    testEmail("user@sub.acme.com", "", ""),
			ruleType: model.RuleTypeDomain,
			value:    "acme.com",
			want:     false,
		},
		{
			name:     "domain no at sign",
			email:    testEmail("not-an-address", "", ""),
			ruleType: model.RuleTypeDomain,
			value:    "acme.com",
			want:     false,
		},
		{
			name:     "subject substring case-insensitive",
			email:    testEmail("a@b.com", "URGENT: server down", ""),
			ruleType: model.RuleTypeSubject,
			value:    "urgent",
			want:     true,
		},
		{
			name:     "content substring case-insensitive",
			email:    testEmail("a@b.com", "", "Your INVOICE is attached"),
			ruleType: model.RuleTypeContent,
			value:    "invoice",
			want:     true,
		},
		{
			name:     "content no match",
			email:    testEmail("a@b.com", "", "plain message"),
			ruleType: model.RuleTypeContent,
			value:    "invoice",
			want:     false,
		},
		{
			name:     "ai rules never match synchronously",
			email:    testEmail("a@b.com", "anything", "anything"),
			ruleType: model.RuleTypeAI,
			value:    "is this email about travel",
			want:     false,
		},
		{
			name:     "unknown rule type never matches",
			email:    testEmail("a@b.com", "anything", "anything"),
			ruleType: "regex",
			value:    ".*",
			want:     false,
		},
		{
			name:     "empty value matches trivially for substring types",
			email:    testEmail("a@b.com", "subject", "body"),
			ruleType: model.RuleTypeSubject,
			value:    "",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := model.NewClassificationRule("tenant-1", "cat-1", tt.ruleType, tt.value, 10)
			assert.Equal(t, tt.want, service.MatchRule(tt.email, rule))
		})
	}
}
