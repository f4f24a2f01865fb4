package port

import (
	"context"

	"github.com/google/uuid"

	"tradebook/internal/domain"
)

// AccountRepository defines the contract for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
}

// UserRepository defines the contract for user persistence.
// All query methods include accountID to enforce account isolation at the
// data layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, accountID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, accountID uuid.UUID, email string) (*domain.User, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, accountID, userID uuid.UUID) error
}

// SettingsRepository defines the contract for account settings persistence.
type SettingsRepository interface {
	Get(ctx context.Context, accountID uuid.UUID) (*domain.AccountSettings, error)
	Upsert(ctx context.Context, settings *domain.AccountSettings) error
}
