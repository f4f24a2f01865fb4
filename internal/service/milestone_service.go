package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/port"
	"tradebook/internal/pricing"
)

// MilestoneInput is the DTO for creating or updating a payment milestone.
// Exactly one of FixedAmount and Percentage is expected; when both are set
// the fixed amount wins. Milestone amounts are never checked against the
// document total.
type MilestoneInput struct {
	Label       string     `json:"label" binding:"required"`
	FixedAmount *float64   `json:"fixed_amount" binding:"omitempty,gt=0"`
	Percentage  *float64   `json:"percentage" binding:"omitempty,gt=0,lte=100"`
	DueDate     *time.Time `json:"due_date"`
}

// MilestoneWithAmount pairs a milestone with its current monetary value,
// resolved against the document's live grand total.
type MilestoneWithAmount struct {
	Milestone *domain.PaymentMilestone `json:"milestone"`
	Amount    float64                  `json:"amount"`
}

// MilestoneService defines the payment milestone contract.
type MilestoneService interface {
	Create(ctx context.Context, accountID, docID uuid.UUID, input MilestoneInput) (*MilestoneWithAmount, error)
	ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]MilestoneWithAmount, error)
	Update(ctx context.Context, accountID, milestoneID uuid.UUID, input MilestoneInput) (*MilestoneWithAmount, error)
	MarkInvoiced(ctx context.Context, accountID, milestoneID, invoiceID uuid.UUID) (*MilestoneWithAmount, error)
	MarkPaid(ctx context.Context, accountID, milestoneID uuid.UUID) (*MilestoneWithAmount, error)
	Delete(ctx context.Context, accountID, milestoneID uuid.UUID) error
}

type milestoneService struct {
	milestoneRepo port.MilestoneRepository
	docRepo       port.DocumentRepository
	settingsSvc   SettingsService
}

// NewMilestoneService creates a new MilestoneService implementation.
func NewMilestoneService(
	milestoneRepo port.MilestoneRepository,
	docRepo port.DocumentRepository,
	settingsSvc SettingsService,
) MilestoneService {
	return &milestoneService{
		milestoneRepo: milestoneRepo,
		docRepo:       docRepo,
		settingsSvc:   settingsSvc,
	}
}

func (s *milestoneService) Create(ctx context.Context, accountID, docID uuid.UUID, input MilestoneInput) (*MilestoneWithAmount, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}

	m := &domain.PaymentMilestone{
		ID:          uuid.New(),
		AccountID:   accountID,
		DocumentID:  docID,
		Label:       input.Label,
		FixedAmount: input.FixedAmount,
		Percentage:  input.Percentage,
		DueDate:     input.DueDate,
		Status:      domain.MilestoneStatusPending,
	}
	if err := s.milestoneRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return s.withAmount(ctx, m, doc)
}

func (s *milestoneService) ListByDocument(ctx context.Context, accountID, docID uuid.UUID) ([]MilestoneWithAmount, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	milestones, err := s.milestoneRepo.ListByDocument(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	total, err := s.grandTotal(ctx, doc)
	if err != nil {
		return nil, err
	}

	out := make([]MilestoneWithAmount, 0, len(milestones))
	for i := range milestones {
		out = append(out, MilestoneWithAmount{
			Milestone: &milestones[i],
			Amount:    pricing.MilestoneAmount(&milestones[i], total),
		})
	}
	return out, nil
}

func (s *milestoneService) Update(ctx context.Context, accountID, milestoneID uuid.UUID, input MilestoneInput) (*MilestoneWithAmount, error) {
	m, err := s.milestoneRepo.GetByID(ctx, accountID, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MilestoneStatusPaid {
		return nil, domain.ErrMilestoneAlreadyPaid
	}

	m.Label = input.Label
	m.FixedAmount = input.FixedAmount
	m.Percentage = input.Percentage
	m.DueDate = input.DueDate
	if err := s.milestoneRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.resolveAmount(ctx, accountID, m)
}

// MarkInvoiced links a milestone to the invoice raised for it.
func (s *milestoneService) MarkInvoiced(ctx context.Context, accountID, milestoneID, invoiceID uuid.UUID) (*MilestoneWithAmount, error) {
	m, err := s.milestoneRepo.GetByID(ctx, accountID, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MilestoneStatusPaid {
		return nil, domain.ErrMilestoneAlreadyPaid
	}
	invoice, err := s.docRepo.GetByID(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.DocumentType != domain.DocumentTypeInvoice || invoice.IsCreditNote {
		return nil, domain.ErrDocumentNotInvoice
	}

	m.Status = domain.MilestoneStatusInvoiced
	m.LinkedInvoiceID = &invoiceID
	if err := s.milestoneRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.resolveAmount(ctx, accountID, m)
}

func (s *milestoneService) MarkPaid(ctx context.Context, accountID, milestoneID uuid.UUID) (*MilestoneWithAmount, error) {
	m, err := s.milestoneRepo.GetByID(ctx, accountID, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MilestoneStatusPaid {
		return nil, domain.ErrMilestoneAlreadyPaid
	}

	now := time.Now().UTC()
	m.Status = domain.MilestoneStatusPaid
	m.PaidAt = &now
	if err := s.milestoneRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.resolveAmount(ctx, accountID, m)
}

func (s *milestoneService) Delete(ctx context.Context, accountID, milestoneID uuid.UUID) error {
	m, err := s.milestoneRepo.GetByID(ctx, accountID, milestoneID)
	if err != nil {
		return err
	}
	if m.Status == domain.MilestoneStatusPaid {
		return domain.ErrMilestoneAlreadyPaid
	}
	return s.milestoneRepo.Delete(ctx, accountID, milestoneID)
}

func (s *milestoneService) resolveAmount(ctx context.Context, accountID uuid.UUID, m *domain.PaymentMilestone) (*MilestoneWithAmount, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, m.DocumentID)
	if err != nil {
		return nil, err
	}
	return s.withAmount(ctx, m, doc)
}

func (s *milestoneService) withAmount(ctx context.Context, m *domain.PaymentMilestone, doc *domain.Document) (*MilestoneWithAmount, error) {
	total, err := s.grandTotal(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &MilestoneWithAmount{
		Milestone: m,
		Amount:    pricing.MilestoneAmount(m, total),
	}, nil
}

func (s *milestoneService) grandTotal(ctx context.Context, doc *domain.Document) (float64, error) {
	settings, err := s.settingsSvc.Get(ctx, doc.AccountID)
	if err != nil {
		return 0, err
	}
	return pricing.GrandTotal(doc, pricing.SettingsFromAccount(settings)), nil
}
