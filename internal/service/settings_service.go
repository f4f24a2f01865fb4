package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tradebook/internal/config"
	"tradebook/internal/domain"
	"tradebook/internal/port"
)

// UpdateSettingsInput is the DTO for updating account billing settings.
type UpdateSettingsInput struct {
	EnableVat         bool    `json:"enable_vat"`
	EnableCis         bool    `json:"enable_cis"`
	DefaultLabourRate float64 `json:"default_labour_rate" binding:"min=0"`
	DefaultVatPercent float64 `json:"default_vat_percent" binding:"min=0"`
	DefaultCisPercent float64 `json:"default_cis_percent" binding:"min=0"`
}

// SettingsService manages the per-account billing toggles and defaults.
type SettingsService interface {
	Get(ctx context.Context, accountID uuid.UUID) (*domain.AccountSettings, error)
	Update(ctx context.Context, accountID uuid.UUID, input UpdateSettingsInput) (*domain.AccountSettings, error)
}

type settingsService struct {
	settingsRepo port.SettingsRepository
	defaults     config.BillingConfig
}

// NewSettingsService creates a new SettingsService implementation.
func NewSettingsService(settingsRepo port.SettingsRepository, defaults config.BillingConfig) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, defaults: defaults}
}

// Get returns the account's settings. Accounts created before the settings row
// existed fall back to the configured defaults without persisting them.
func (s *settingsService) Get(ctx context.Context, accountID uuid.UUID) (*domain.AccountSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.defaultSettings(accountID), nil
		}
		return nil, fmt.Errorf("settings.Get: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, accountID uuid.UUID, input UpdateSettingsInput) (*domain.AccountSettings, error) {
	settings := &domain.AccountSettings{
		AccountID:         accountID,
		EnableVat:         input.EnableVat,
		EnableCis:         input.EnableCis,
		DefaultLabourRate: input.DefaultLabourRate,
		DefaultVatPercent: input.DefaultVatPercent,
		DefaultCisPercent: input.DefaultCisPercent,
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("settings.Update: %w", err)
	}
	return settings, nil
}

func (s *settingsService) defaultSettings(accountID uuid.UUID) *domain.AccountSettings {
	return &domain.AccountSettings{
		AccountID:         accountID,
		EnableVat:         s.defaults.EnableVat,
		EnableCis:         s.defaults.EnableCis,
		DefaultLabourRate: s.defaults.DefaultLabourRate,
		DefaultVatPercent: s.defaults.DefaultVatPercent,
		DefaultCisPercent: s.defaults.DefaultCisPercent,
	}
}
