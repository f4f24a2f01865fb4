package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

// ExpenseInput is the DTO for recording an expense.
type ExpenseInput struct {
	JobID       *uuid.UUID `json:"job_id"`
	Description string     `json:"description" binding:"required"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	IncurredAt  *time.Time `json:"incurred_at"`
}

// ExpenseService defines the expense tracking contract.
type ExpenseService interface {
	Create(ctx context.Context, accountID, userID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	ListBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Expense, error)
	Delete(ctx context.Context, accountID, expenseID uuid.UUID) error
}

type expenseService struct {
	expenseRepo port.ExpenseRepository
	jobRepo     port.JobRepository
}

// NewExpenseService creates a new ExpenseService implementation.
func NewExpenseService(expenseRepo port.ExpenseRepository, jobRepo port.JobRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, jobRepo: jobRepo}
}

func (s *expenseService) Create(ctx context.Context, accountID, userID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	if input.JobID != nil {
		if _, err := s.jobRepo.GetByID(ctx, accountID, *input.JobID); err != nil {
			return nil, err
		}
	}
	incurredAt := time.Now().UTC()
	if input.IncurredAt != nil {
		incurredAt = *input.IncurredAt
	}
	expense := &domain.Expense{
		ID:          uuid.New(),
		AccountID:   accountID,
		JobID:       input.JobID,
		Description: input.Description,
		Amount:      input.Amount,
		IncurredAt:  incurredAt,
		CreatedBy:   userID,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Expense, error) {
	return s.expenseRepo.ListBetween(ctx, accountID, from, to)
}

func (s *expenseService) Delete(ctx context.Context, accountID, expenseID uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, accountID, expenseID)
}
