package service

import (
	"context"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/port"
	"tradebook/internal/pricing"
)

// CreateCreditNoteInput is the DTO for raising a credit note against an
// invoice. Leaving Adjustments nil credits the invoice in full.
type CreateCreditNoteInput struct {
	Reason      string                     `json:"reason" binding:"required"`
	Adjustments *pricing.CreditAdjustments `json:"adjustments"`
}

// CreditNoteService defines the credit note contract.
type CreditNoteService interface {
	Create(ctx context.Context, accountID, userID, invoiceID uuid.UUID, input CreateCreditNoteInput) (*DocumentWithTotals, error)
	ListForInvoice(ctx context.Context, accountID, invoiceID uuid.UUID) ([]DocumentWithTotals, error)
}

type creditNoteService struct {
	docRepo     port.DocumentRepository
	settingsSvc SettingsService
}

// NewCreditNoteService creates a new CreditNoteService implementation.
func NewCreditNoteService(docRepo port.DocumentRepository, settingsSvc SettingsService) CreditNoteService {
	return &creditNoteService{docRepo: docRepo, settingsSvc: settingsSvc}
}

func (s *creditNoteService) Create(ctx context.Context, accountID, userID, invoiceID uuid.UUID, input CreateCreditNoteInput) (*DocumentWithTotals, error) {
	invoice, err := s.docRepo.GetByID(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.DocumentType != domain.DocumentTypeInvoice || invoice.IsCreditNote {
		return nil, domain.ErrDocumentNotInvoice
	}

	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	engineSettings := pricing.SettingsFromAccount(settings)

	var note *domain.Document
	if input.Adjustments == nil {
		note, err = pricing.DeriveFullCredit(invoice, input.Reason, engineSettings)
	} else {
		note, err = pricing.DerivePartialCredit(invoice, *input.Adjustments, input.Reason, engineSettings)
	}
	if err != nil {
		return nil, err
	}

	number, err := s.docRepo.NextNumber(ctx, accountID, note.DocumentType, true)
	if err != nil {
		return nil, err
	}
	note.Number = number
	note.CreatedBy = userID

	total := pricing.GrandTotal(note, engineSettings)
	note.CachedTotal = &total

	if err := s.docRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return &DocumentWithTotals{
		Document: note,
		Totals:   pricing.Totals(note, engineSettings, note.Display),
	}, nil
}

func (s *creditNoteService) ListForInvoice(ctx context.Context, accountID, invoiceID uuid.UUID) ([]DocumentWithTotals, error) {
	notes, err := s.docRepo.ListCreditNotesForInvoice(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	engineSettings := pricing.SettingsFromAccount(settings)

	out := make([]DocumentWithTotals, 0, len(notes))
	for i := range notes {
		note := &notes[i]
		out = append(out, DocumentWithTotals{
			Document: note,
			Totals:   pricing.Totals(note, engineSettings, note.Display),
		})
	}
	return out, nil
}
