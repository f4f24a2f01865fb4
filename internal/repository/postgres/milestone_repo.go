package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

type milestoneRepo struct {
	db *sqlx.DB
}

// NewMilestoneRepo creates a new PostgreSQL-backed MilestoneRepository.
func NewMilestoneRepo(db *sqlx.DB) port.MilestoneRepository {
	return &milestoneRepo{db: db}
}

func (r *milestoneRepo) Create(ctx context.Context, m *domain.PaymentMilestone) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_milestones
			(id, account_id, document_id, label, fixed_amount, percentage, due_date, status, linked_invoice_id, paid_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.AccountID, m.DocumentID, m.Label, m.FixedAmount, m.Percentage,
		m.DueDate, m.Status, m.LinkedInvoiceID, m.PaidAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("milestoneRepo.Create: %w", err)
	}
	return nil
}

func (r *milestoneRepo) GetByID(ctx context.Context, accountID, milestoneID uuid.UUID) (*domain.PaymentMilestone, error) {
	var m domain.PaymentMilestone
	err := r.db.GetContext(ctx, &m,
		"SELECT * FROM payment_milestones WHERE id = $1 AND account_id = $2", milestoneID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("milestoneRepo.GetByID: %w", err)
	}
	return &m, nil
}

func (r *milestoneRepo) ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]domain.PaymentMilestone, error) {
	var milestones []domain.PaymentMilestone
	err := r.db.SelectContext(ctx, &milestones,
		`SELECT * FROM payment_milestones WHERE account_id = $1 AND document_id = $2
		 ORDER BY created_at ASC`,
		accountID, docID)
	if err != nil {
		return nil, fmt.Errorf("milestoneRepo.ListByDocument: %w", err)
	}
	return milestones, nil
}

func (r *milestoneRepo) Update(ctx context.Context, m *domain.PaymentMilestone) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE payment_milestones SET
			label = $1, fixed_amount = $2, percentage = $3, due_date = $4,
			status = $5, linked_invoice_id = $6, paid_at = $7, updated_at = $8
		 WHERE id = $9 AND account_id = $10`,
		m.Label, m.FixedAmount, m.Percentage, m.DueDate,
		m.Status, m.LinkedInvoiceID, m.PaidAt, m.UpdatedAt,
		m.ID, m.AccountID)
	if err != nil {
		return fmt.Errorf("milestoneRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrMilestoneNotFound
	}
	return nil
}

func (r *milestoneRepo) Delete(ctx context.Context, accountID, milestoneID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM payment_milestones WHERE id = $1 AND account_id = $2", milestoneID, accountID)
	if err != nil {
		return fmt.Errorf("milestoneRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrMilestoneNotFound
	}
	return nil
}
