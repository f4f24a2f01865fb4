package service

import (
	"context"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

// JobInput is the DTO for creating or updating a job.
type JobInput struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	Title      string     `json:"title" binding:"required"`
	Address    string     `json:"address"`
	Notes      string     `json:"notes"`
}

// JobService defines the job management contract.
type JobService interface {
	Create(ctx context.Context, accountID uuid.UUID, input JobInput) (*domain.Job, error)
	GetByID(ctx context.Context, accountID, jobID uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Job, int, error)
	Update(ctx context.Context, accountID, jobID uuid.UUID, input JobInput) (*domain.Job, error)
	Delete(ctx context.Context, accountID, jobID uuid.UUID) error
}

type jobService struct {
	jobRepo      port.JobRepository
	customerRepo port.CustomerRepository
}

// NewJobService creates a new JobService implementation.
func NewJobService(jobRepo port.JobRepository, customerRepo port.CustomerRepository) JobService {
	return &jobService{jobRepo: jobRepo, customerRepo: customerRepo}
}

func (s *jobService) Create(ctx context.Context, accountID uuid.UUID, input JobInput) (*domain.Job, error) {
	if input.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, accountID, *input.CustomerID); err != nil {
			return nil, err
		}
	}
	job := &domain.Job{
		ID:         uuid.New(),
		AccountID:  accountID,
		CustomerID: input.CustomerID,
		Title:      input.Title,
		Address:    input.Address,
		Notes:      input.Notes,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, accountID, jobID uuid.UUID) (*domain.Job, error) {
	return s.jobRepo.GetByID(ctx, accountID, jobID)
}

func (s *jobService) List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.Job, int, error) {
	return s.jobRepo.ListByAccount(ctx, accountID, offset, limit)
}

func (s *jobService) Update(ctx context.Context, accountID, jobID uuid.UUID, input JobInput) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, accountID, jobID)
	if err != nil {
		return nil, err
	}
	if input.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, accountID, *input.CustomerID); err != nil {
			return nil, err
		}
	}
	job.CustomerID = input.CustomerID
	job.Title = input.Title
	job.Address = input.Address
	job.Notes = input.Notes
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, accountID, jobID uuid.UUID) error {
	return s.jobRepo.Delete(ctx, accountID, jobID)
}
