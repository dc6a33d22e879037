package model

import (
	"time"

	"github.com/google/uuid"
)

// Processing status values for an ingested email.
const (
	ProcessingStatusPending    = "pending"
	ProcessingStatusClassified = "classified"
	ProcessingStatusFailed     = "failed"
)

type EmailMessage struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	MailboxID        string    `json:"mailbox_id"`
	MessageID        string    `json:"message_id"`
	SenderEmail      string    `json:"sender_email"`
	SenderName       string    `json:"sender_name,omitempty"`
	Subject          string    `json:"subject"`
	BodyContent      string    `json:"body_content"`
	BodyPreview      string    `json:"body_preview"`
	Importance       string    `json:"importance,omitempty"`
	ReceivedAt       time.Time `json:"received_at"`
	IsVip            bool      `json:"is_vip"`
	ProcessingStatus string    `json:"processing_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewEmailMessage(tenantID, mailboxID, messageID, senderEmail, senderName, subject, bodyContent string, receivedAt time.Time) *EmailMessage {
	now := time.Now()
	return &EmailMessage{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		MailboxID:        mailboxID,
		MessageID:        messageID,
		SenderEmail:      senderEmail,
		SenderName:       senderName,
		Subject:          subject,
		BodyContent:      bodyContent,
		ReceivedAt:       receivedAt,
		ProcessingStatus: ProcessingStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
