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

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, account_id, name, email, phone, address, postcode, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		customer.ID, customer.AccountID, customer.Name, customer.Email,
		customer.Phone, customer.Address, customer.Postcode,
		customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, accountID, customerID uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer,
		"SELECT * FROM customers WHERE id = $1 AND account_id = $2", customerID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &customer, nil
}

func (r *customerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Customer, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM customers WHERE account_id = $1", accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.ListByAccount count: %w", err)
	}

	var customers []domain.Customer
	err = r.db.SelectContext(ctx, &customers,
		`SELECT * FROM customers WHERE account_id = $1
		 ORDER BY name ASC LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.ListByAccount: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	customer.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET name = $1, email = $2, phone = $3, address = $4, postcode = $5, updated_at = $6
		 WHERE id = $7 AND account_id = $8`,
		customer.Name, customer.Email, customer.Phone, customer.Address, customer.Postcode,
		customer.UpdatedAt, customer.ID, customer.AccountID)
	if err != nil {
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, accountID, customerID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM customers WHERE id = $1 AND account_id = $2", customerID, accountID)
	if err != nil {
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
