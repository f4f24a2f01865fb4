package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain"
)

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]domain.Payment, error)
	SumByDocument(ctx context.Context, accountID, docID uuid.UUID) (float64, error)
}

// MilestoneRepository defines the contract for payment milestone persistence.
type MilestoneRepository interface {
	Create(ctx context.Context, m *domain.PaymentMilestone) error
	GetByID(ctx context.Context, accountID, milestoneID uuid.UUID) (*domain.PaymentMilestone, error)
	ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]domain.PaymentMilestone, error)
	Update(ctx context.Context, m *domain.PaymentMilestone) error
	Delete(ctx context.Context, accountID, milestoneID uuid.UUID) error
}

// ExpenseRepository defines the contract for expense persistence.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	ListBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Expense, error)
	SumBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) (float64, error)
	Delete(ctx context.Context, accountID, expenseID uuid.UUID) error
}
