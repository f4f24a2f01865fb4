package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"tradebook/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendDocumentEmail(ctx context.Context, email port.DocumentEmail) error {
	subject := fmt.Sprintf("Your %s %s for %s", email.DocumentType, email.Number, email.TotalDisplay)
	htmlBody := buildDocumentHTML(email)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour %s %s for %s is ready to view:\n%s\n\nThanks,\n%s",
		email.ToName, email.DocumentType, email.Number, email.TotalDisplay, email.ShareURL, s.fromName)

	return s.send(ctx, email.ToEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendReceiptEmail(ctx context.Context, toEmail, toName, number, amountDisplay string) error {
	subject := fmt.Sprintf("Payment received for invoice %s", number)
	htmlBody := buildReceiptHTML(toName, number, amountDisplay)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nWe've received your payment of %s for invoice %s. Thank you.\n\n%s",
		toName, amountDisplay, number, s.fromName)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildDocumentHTML(email port.DocumentEmail) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your %s is ready</h2>
  <p>Hi %s,</p>
  <p>Your %s <strong>%s</strong> for <strong>%s</strong> is ready to view:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #16A34A; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Document</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
</body>
</html>`, email.DocumentType, email.ToName, email.DocumentType, email.Number, email.TotalDisplay, email.ShareURL, email.ShareURL)
}

func buildReceiptHTML(name, number, amountDisplay string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Payment received</h2>
  <p>Hi %s,</p>
  <p>We've received your payment of <strong>%s</strong> for invoice <strong>%s</strong>. Thank you.</p>
</body>
</html>`, name, amountDisplay, number)
}
