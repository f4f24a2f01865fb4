package service

import (
	"context"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

// CustomerInput is the DTO for creating or updating a customer.
type CustomerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, accountID uuid.UUID, input CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, accountID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, accountID, customerID uuid.UUID, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, accountID, customerID uuid.UUID) error
}

type customerService struct {
	customerRepo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(customerRepo port.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, accountID uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Postcode:  input.Postcode,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, accountID, customerID uuid.UUID) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, accountID, customerID)
}

func (s *customerService) List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Customer, int, error) {
	return s.customerRepo.ListByAccount(ctx, accountID, offset, limit)
}

func (s *customerService) Update(ctx context.Context, accountID, customerID uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, accountID, customerID)
	if err != nil {
		return nil, err
	}
	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Postcode = input.Postcode
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, accountID, customerID uuid.UUID) error {
	return s.customerRepo.Delete(ctx, accountID, customerID)
}
