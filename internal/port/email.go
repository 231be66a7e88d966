package port

import (
	"context"

	"haccp/internal/domain"
)

// Recipient is an addressee of a notification.
type Recipient struct {
	Email string
	Name  string
}

// MissedChecksDigest is the content of one reminder mail for a market.
type MissedChecksDigest struct {
	TenantName string
	MarketName string
	Checks     []domain.MissedCheck
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendMissedChecksDigest(ctx context.Context, to Recipient, digest MissedChecksDigest) error
}
