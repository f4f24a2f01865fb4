package port

import "context"

// DocumentEmail carries everything needed to notify a customer about a
// document: the share link points at the rendered PDF.
type DocumentEmail struct {
	ToEmail      string
	ToName       string
	DocumentType string
	Number       string
	TotalDisplay string
	ShareURL     string
}

// EmailSender defines the contract for sending customer-facing emails.
type EmailSender interface {
	SendDocumentEmail(ctx context.Context, email DocumentEmail) error
	SendReceiptEmail(ctx context.Context, toEmail, toName, number, amountDisplay string) error
}
