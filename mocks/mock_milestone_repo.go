package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradebook/internal/domain"
)

// MockMilestoneRepo is a mock implementation of port.MilestoneRepository.
type MockMilestoneRepo struct {
	mock.Mock
}

func (m *MockMilestoneRepo) Create(ctx context.Context, milestone *domain.PaymentMilestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepo) GetByID(ctx context.Context, accountID, milestoneID uuid.UUID) (*domain.PaymentMilestone, error) {
	args := m.Called(ctx, accountID, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMilestone), args.Error(1)
}

func (m *MockMilestoneRepo) ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]domain.PaymentMilestone, error) {
	args := m.Called(ctx, accountID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMilestone), args.Error(1)
}

func (m *MockMilestoneRepo) Update(ctx context.Context, milestone *domain.PaymentMilestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepo) Delete(ctx context.Context, accountID, milestoneID uuid.UUID) error {
	args := m.Called(ctx, accountID, milestoneID)
	return args.Error(0)
}
