package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

// InviteUserInput is the DTO for an admin adding a user to their account.
type InviteUserInput struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	FullName string          `json:"full_name" binding:"required"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=admin member"`
}

// UserService defines the account user management contract.
type UserService interface {
	Invite(ctx context.Context, accountID uuid.UUID, input InviteUserInput) (*domain.User, error)
	List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Deactivate(ctx context.Context, accountID, userID, callerID uuid.UUID) (*domain.User, error)
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Invite(ctx context.Context, accountID uuid.UUID, input InviteUserInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		AccountID:    accountID,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	return s.userRepo.ListByAccount(ctx, accountID, offset, limit)
}

// Deactivate disables a user's access. Admins cannot deactivate themselves.
func (s *userService) Deactivate(ctx context.Context, accountID, userID, callerID uuid.UUID) (*domain.User, error) {
	if userID == callerID {
		return nil, domain.ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
