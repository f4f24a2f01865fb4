package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

type expenseRepo struct {
	db *sqlx.DB
}

// NewExpenseRepo creates a new PostgreSQL-backed ExpenseRepository.
func NewExpenseRepo(db *sqlx.DB) port.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	e.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, account_id, job_id, description, amount, incurred_at, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.AccountID, e.JobID, e.Description, e.Amount, e.IncurredAt, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("expenseRepo.Create: %w", err)
	}
	return nil
}

func (r *expenseRepo) ListBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.SelectContext(ctx, &expenses,
		`SELECT * FROM expenses
		 WHERE account_id = $1 AND incurred_at >= $2 AND incurred_at < $3
		 ORDER BY incurred_at ASC`,
		accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("expenseRepo.ListBetween: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepo) SumBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE account_id = $1 AND incurred_at >= $2 AND incurred_at < $3`,
		accountID, from, to)
	if err != nil {
		return 0, fmt.Errorf("expenseRepo.SumBetween: %w", err)
	}
	return total, nil
}

func (r *expenseRepo) Delete(ctx context.Context, accountID, expenseID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = $1 AND account_id = $2", expenseID, accountID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
