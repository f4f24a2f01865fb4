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

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	payment.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, account_id, document_id, amount, method, paid_at, note, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		payment.ID, payment.AccountID, payment.DocumentID, payment.Amount,
		payment.Method, payment.PaidAt, payment.Note, payment.CreatedBy, payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		`SELECT * FROM payments WHERE account_id = $1 AND document_id = $2
		 ORDER BY paid_at ASC`,
		accountID, docID)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByDocument: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) SumByDocument(ctx context.Context, accountID, docID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE account_id = $1 AND document_id = $2",
		accountID, docID)
	if err != nil {
		return 0, fmt.Errorf("paymentRepo.SumByDocument: %w", err)
	}
	return total, nil
}
