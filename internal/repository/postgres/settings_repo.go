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

type settingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo creates a new PostgreSQL-backed SettingsRepository.
func NewSettingsRepo(db *sqlx.DB) port.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context, accountID uuid.UUID) (*domain.AccountSettings, error) {
	var s domain.AccountSettings
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM account_settings WHERE account_id = $1", accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("settingsRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, settings *domain.AccountSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO account_settings (account_id, enable_vat, enable_cis, default_labour_rate, default_vat_percent, default_cis_percent, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (account_id) DO UPDATE SET
		   enable_vat = EXCLUDED.enable_vat,
		   enable_cis = EXCLUDED.enable_cis,
		   default_labour_rate = EXCLUDED.default_labour_rate,
		   default_vat_percent = EXCLUDED.default_vat_percent,
		   default_cis_percent = EXCLUDED.default_cis_percent,
		   updated_at = EXCLUDED.updated_at`,
		settings.AccountID, settings.EnableVat, settings.EnableCis,
		settings.DefaultLabourRate, settings.DefaultVatPercent, settings.DefaultCisPercent,
		settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("settingsRepo.Upsert: %w", err)
	}
	return nil
}
