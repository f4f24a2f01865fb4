package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradebook/internal/domain"
)

// MockPaymentRepo is a mock implementation of port.PaymentRepository.
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]domain.Payment, error) {
	args := m.Called(ctx, accountID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) SumByDocument(ctx context.Context, accountID, docID uuid.UUID) (float64, error) {
	args := m.Called(ctx, accountID, docID)
	return args.Get(0).(float64), args.Error(1)
}
