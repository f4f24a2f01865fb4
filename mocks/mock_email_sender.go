package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradebook/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendDocumentEmail(ctx context.Context, email port.DocumentEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailSender) SendReceiptEmail(ctx context.Context, toEmail, toName, number, amountDisplay string) error {
	args := m.Called(ctx, toEmail, toName, number, amountDisplay)
	return args.Error(0)
}
