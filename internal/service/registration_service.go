package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tradebook/internal/config"
	"tradebook/internal/domain"
	"tradebook/internal/port"
)

// RegisterInput is the DTO for new account sign-up. The first user of an
// account is always its admin.
type RegisterInput struct {
	AccountName string `json:"account_name" binding:"required"`
	AccountSlug string `json:"account_slug" binding:"required,min=3"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
}

// RegisterOutput contains the results of a successful registration.
type RegisterOutput struct {
	Account *domain.Account `json:"account"`
	User    *domain.User    `json:"user"`
	Tokens  *TokenPair      `json:"tokens"`
}

// RegistrationService defines the account sign-up contract.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
}

type registrationService struct {
	accountRepo  port.AccountRepository
	userRepo     port.UserRepository
	settingsRepo port.SettingsRepository
	authSvc      AuthService
	billingCfg   config.BillingConfig
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	accountRepo port.AccountRepository,
	userRepo port.UserRepository,
	settingsRepo port.SettingsRepository,
	authSvc AuthService,
	billingCfg config.BillingConfig,
) RegistrationService {
	return &registrationService{
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		authSvc:      authSvc,
		billingCfg:   billingCfg,
	}
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	account := &domain.Account{
		ID:       uuid.New(),
		Name:     input.AccountName,
		Slug:     input.AccountSlug,
		IsActive: true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err // ErrDuplicateAccountSlug propagates naturally
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		AccountID:    account.ID,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Seed the account's billing settings from the configured defaults.
	settings := &domain.AccountSettings{
		AccountID:         account.ID,
		EnableVat:         s.billingCfg.EnableVat,
		EnableCis:         s.billingCfg.EnableCis,
		DefaultLabourRate: s.billingCfg.DefaultLabourRate,
		DefaultVatPercent: s.billingCfg.DefaultVatPercent,
		DefaultCisPercent: s.billingCfg.DefaultCisPercent,
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("seeding account settings: %w", err)
	}

	tokens, err := s.authSvc.Login(ctx, LoginInput{
		AccountSlug: input.AccountSlug,
		Email:       input.Email,
		Password:    input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	return &RegisterOutput{
		Account: account,
		User:    user,
		Tokens:  tokens,
	}, nil
}
