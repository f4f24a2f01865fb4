package port

import (
	"context"

	"github.com/google/uuid"

	"tradebook/internal/domain"
)

// CustomerRepository defines the contract for customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, accountID, customerID uuid.UUID) (*domain.Customer, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, accountID, customerID uuid.UUID) error
}

// JobRepository defines the contract for job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, accountID, jobID uuid.UUID) (*domain.Job, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Job, int, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, accountID, jobID uuid.UUID) error
}
