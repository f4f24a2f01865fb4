package noop

import (
	"context"
	"log"

	"tradebook/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDocumentEmail(_ context.Context, email port.DocumentEmail) error {
	log.Printf("[NOOP EMAIL] %s %s (%s) for %s (%s): %s",
		email.DocumentType, email.Number, email.TotalDisplay, email.ToName, email.ToEmail, email.ShareURL)
	return nil
}

func (s *noopSender) SendReceiptEmail(_ context.Context, toEmail, toName, number, amountDisplay string) error {
	log.Printf("[NOOP EMAIL] Receipt for invoice %s (%s) to %s (%s)", number, amountDisplay, toName, toEmail)
	return nil
}
