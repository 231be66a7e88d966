package noop

import (
	"context"

	"go.uber.org/zap"

	"haccp/internal/email"
	"haccp/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates an EmailSender that only logs the rendered mail.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendMissedChecksDigest(_ context.Context, to port.Recipient, digest port.MissedChecksDigest) error {
	msg := email.RenderMissedChecksDigest(s.frontendURL, to, digest)
	zap.L().Named("email").Info("noop email",
		zap.String("to", to.Email),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text))
	return nil
}
