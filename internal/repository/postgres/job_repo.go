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

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, account_id, customer_id, title, address, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		job.ID, job.AccountID, job.CustomerID, job.Title, job.Address, job.Notes,
		job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, accountID, jobID uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM jobs WHERE id = $1 AND account_id = $2", jobID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *jobRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Job, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM jobs WHERE account_id = $1", accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.ListByAccount count: %w", err)
	}

	var jobs []domain.Job
	err = r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM jobs WHERE account_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.ListByAccount: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET customer_id = $1, title = $2, address = $3, notes = $4, updated_at = $5
		 WHERE id = $6 AND account_id = $7`,
		job.CustomerID, job.Title, job.Address, job.Notes, job.UpdatedAt,
		job.ID, job.AccountID)
	if err != nil {
		return fmt.Errorf("jobRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, accountID, jobID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM jobs WHERE id = $1 AND account_id = $2", jobID, accountID)
	if err != nil {
		return fmt.Errorf("jobRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
