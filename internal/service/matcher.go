package service

import (
	"strings"

	"mailflow/internal/model"
)

// MatchRule reports whether a textual rule matches an email. Pure function,
// no I/O; all comparisons are case-insensitive. AI rules (and unknown rule
// types) never match here. They need a network round trip and are resolved
// through the condition evaluator instead.
//
// An empty rule value matches trivially for the substring types; rule
// creation rejects empty values so that case does not occur in practice.
func MatchRule(email *model.EmailMessage, rule *model.ClassificationRule) bool {
	value := strings.ToLower(rule.RuleValue)

	switch rule.RuleType {
	case model.RuleTypeSender:
		return strings.Contains(strings.ToLower(email.SenderEmail), value)
	case model.RuleTypeDomain:
		return senderDomain(email.SenderEmail) == value
	case model.RuleTypeSubject:
		return strings.Contains(strings.ToLower(email.Subject), value)
	case model.RuleTypeContent:
		return strings.Contains(strings.ToLower(email.BodyContent), value)
	default:
		return false
	}
}

// senderDomain returns the lowercased part after the last "@", or "" when
// the address has none.
func senderDomain(address string) string {
	idx := strings.LastIndex(address, "@")
	if idx < 0 || idx == len(address)-1 {
		return ""
	}
	return strings.ToLower(address[idx+1:])
}
