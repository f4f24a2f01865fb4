package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradebook/internal/domain"
)

// MockSettingsRepo is a mock implementation of port.SettingsRepository.
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context, accountID uuid.UUID) (*domain.AccountSettings, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSettings), args.Error(1)
}

func (m *MockSettingsRepo) Upsert(ctx context.Context, settings *domain.AccountSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
