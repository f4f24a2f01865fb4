package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/port"
	"tradebook/internal/pricing"
)

// CreateDocumentInput is the DTO for creating a document. Percent fields left
// nil inherit the account defaults; a nil LabourRate leaves the document rate
// at zero so section and account fallbacks apply.
type CreateDocumentInput struct {
	CustomerID    *uuid.UUID                `json:"customer_id"`
	JobID         *uuid.UUID                `json:"job_id"`
	Title         string                    `json:"title" binding:"required"`
	DocumentType  domain.DocumentType       `json:"document_type" binding:"required,oneof=estimate quotation invoice"`
	Sections      domain.SectionList        `json:"sections"`
	LabourRate    *float64                  `json:"labour_rate"`
	MarkupPercent float64                   `json:"markup_percent"`
	VatPercent    *float64                  `json:"vat_percent"`
	CisPercent    *float64                  `json:"cis_percent"`
	Discount      *domain.Discount          `json:"discount"`
	PartPayment   *domain.PartPaymentConfig `json:"part_payment"`
	Display       *domain.DisplayOptions    `json:"display_options"`
	DueDate       *time.Time                `json:"due_date"`
}

// UpdateDocumentInput is the DTO for editing a document's contents.
type UpdateDocumentInput struct {
	CustomerID    *uuid.UUID                `json:"customer_id"`
	JobID         *uuid.UUID                `json:"job_id"`
	Title         string                    `json:"title" binding:"required"`
	Sections      domain.SectionList        `json:"sections"`
	LabourRate    float64                   `json:"labour_rate"`
	MarkupPercent float64                   `json:"markup_percent"`
	VatPercent    float64                   `json:"vat_percent"`
	CisPercent    float64                   `json:"cis_percent"`
	Discount      domain.Discount           `json:"discount"`
	PartPayment   domain.PartPaymentConfig  `json:"part_payment"`
	Display       domain.DisplayOptions     `json:"display_options"`
	DueDate       *time.Time                `json:"due_date"`
}

// UpdateStatusInput is the DTO for moving a document through its lifecycle.
type UpdateStatusInput struct {
	Status        domain.DocumentStatus `json:"status" binding:"required"`
	PaymentMethod *domain.PaymentMethod `json:"payment_method"`
}

// ListDocumentsInput narrows document list queries from the API surface.
type ListDocumentsInput struct {
	DocumentType *domain.DocumentType
	Status       *domain.DocumentStatus
	CustomerID   *uuid.UUID
	JobID        *uuid.UUID
	CreditNotes  *bool
	Offset       int
	Limit        int
}

// DocumentWithTotals pairs a document with its freshly computed breakdown.
// Totals are always recomputed from sections, never read from CachedTotal.
type DocumentWithTotals struct {
	Document *domain.Document  `json:"document"`
	Totals   pricing.Breakdown `json:"totals"`
}

// DocumentService defines the document management contract.
type DocumentService interface {
	Create(ctx context.Context, accountID, userID uuid.UUID, input CreateDocumentInput) (*DocumentWithTotals, error)
	GetByID(ctx context.Context, accountID, docID uuid.UUID) (*DocumentWithTotals, error)
	GetByShareToken(ctx context.Context, token string) (*DocumentWithTotals, error)
	List(ctx context.Context, accountID uuid.UUID, input ListDocumentsInput) ([]DocumentWithTotals, int, error)
	Update(ctx context.Context, accountID, docID uuid.UUID, input UpdateDocumentInput) (*DocumentWithTotals, error)
	UpdateStatus(ctx context.Context, accountID, docID uuid.UUID, input UpdateStatusInput) (*DocumentWithTotals, error)
	ConvertToInvoice(ctx context.Context, accountID, docID uuid.UUID) (*DocumentWithTotals, error)
	Send(ctx context.Context, accountID, docID uuid.UUID) (*DocumentWithTotals, error)
	Delete(ctx context.Context, accountID, docID uuid.UUID) error
}

type documentService struct {
	docRepo      port.DocumentRepository
	customerRepo port.CustomerRepository
	settingsSvc  SettingsService
	emailSender  port.EmailSender
	shareBaseURL string
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	customerRepo port.CustomerRepository,
	settingsSvc SettingsService,
	emailSender port.EmailSender,
	shareBaseURL string,
) DocumentService {
	return &documentService{
		docRepo:      docRepo,
		customerRepo: customerRepo,
		settingsSvc:  settingsSvc,
		emailSender:  emailSender,
		shareBaseURL: shareBaseURL,
	}
}

func (s *documentService) Create(ctx context.Context, accountID, userID uuid.UUID, input CreateDocumentInput) (*DocumentWithTotals, error) {
	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	number, err := s.docRepo.NextNumber(ctx, accountID, input.DocumentType, false)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:            uuid.New(),
		AccountID:     accountID,
		CustomerID:    input.CustomerID,
		JobID:         input.JobID,
		Number:        number,
		Title:         input.Title,
		DocumentType:  input.DocumentType,
		Status:        domain.DocumentStatusDraft,
		Sections:      normalizeSections(input.Sections),
		MarkupPercent: input.MarkupPercent,
		VatPercent:    settings.DefaultVatPercent,
		CisPercent:    settings.DefaultCisPercent,
		Display:       domain.DefaultDisplayOptions(),
		DueDate:       input.DueDate,
		CreatedBy:     userID,
	}
	if input.LabourRate != nil {
		doc.LabourRate = *input.LabourRate
	}
	if input.VatPercent != nil {
		doc.VatPercent = *input.VatPercent
	}
	if input.CisPercent != nil {
		doc.CisPercent = *input.CisPercent
	}
	if input.Discount != nil {
		doc.Discount = *input.Discount
	}
	if input.PartPayment != nil {
		doc.PartPayment = *input.PartPayment
	}
	if input.Display != nil {
		doc.Display = *input.Display
	}

	total := pricing.GrandTotal(doc, pricing.SettingsFromAccount(settings))
	doc.CachedTotal = &total

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return s.withTotals(doc, settings), nil
}

func (s *documentService) GetByID(ctx context.Context, accountID, docID uuid.UUID) (*DocumentWithTotals, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.withTotals(doc, settings), nil
}

func (s *documentService) GetByShareToken(ctx context.Context, token string) (*DocumentWithTotals, error) {
	doc, err := s.docRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.Get(ctx, doc.AccountID)
	if err != nil {
		return nil, err
	}
	return s.withTotals(doc, settings), nil
}

func (s *documentService) List(ctx context.Context, accountID uuid.UUID, input ListDocumentsInput) ([]DocumentWithTotals, int, error) {
	filter := port.DocumentFilter{
		DocumentType: input.DocumentType,
		Status:       input.Status,
		CustomerID:   input.CustomerID,
		JobID:        input.JobID,
		CreditNotes:  input.CreditNotes,
	}
	docs, total, err := s.docRepo.List(ctx, accountID, filter, input.Offset, input.Limit)
	if err != nil {
		return nil, 0, err
	}
	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	out := make([]DocumentWithTotals, 0, len(docs))
	for i := range docs {
		out = append(out, *s.withTotals(&docs[i], settings))
	}
	return out, total, nil
}

func (s *documentService) Update(ctx context.Context, accountID, docID uuid.UUID, input UpdateDocumentInput) (*DocumentWithTotals, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	if !doc.Editable() {
		return nil, domain.ErrDocumentImmutable
	}

	doc.CustomerID = input.CustomerID
	doc.JobID = input.JobID
	doc.Title = input.Title
	doc.Sections = normalizeSections(input.Sections)
	doc.LabourRate = input.LabourRate
	doc.MarkupPercent = input.MarkupPercent
	doc.VatPercent = input.VatPercent
	doc.CisPercent = input.CisPercent
	doc.Discount = input.Discount
	doc.PartPayment = input.PartPayment
	doc.Display = input.Display
	doc.DueDate = input.DueDate

	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	total := pricing.GrandTotal(doc, pricing.SettingsFromAccount(settings))
	doc.CachedTotal = &total

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return s.withTotals(doc, settings), nil
}

func (s *documentService) UpdateStatus(ctx context.Context, accountID, docID uuid.UUID, input UpdateStatusInput) (*DocumentWithTotals, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	if doc.IsCreditNote {
		return nil, domain.ErrDocumentImmutable
	}
	if !doc.Status.CanTransition(input.Status) {
		return nil, domain.ErrInvalidStatusTransition
	}

	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc.Status = input.Status
	switch input.Status {
	case domain.DocumentStatusAccepted:
		doc.AcceptedAt = &now
	case domain.DocumentStatusPaid:
		total := pricing.GrandTotal(doc, pricing.SettingsFromAccount(settings))
		doc.PaymentDate = &now
		doc.AmountPaid = &total
		doc.PaymentMethod = input.PaymentMethod
	}

	if err := s.docRepo.UpdateStatus(ctx, doc); err != nil {
		return nil, err
	}
	return s.withTotals(doc, settings), nil
}

// ConvertToInvoice turns an accepted estimate or quotation into an invoice.
// The document is renumbered under the invoice sequence and moves straight to
// invoiced; its sections and pricing inputs carry over untouched.
func (s *documentService) ConvertToInvoice(ctx context.Context, accountID, docID uuid.UUID) (*DocumentWithTotals, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	if doc.IsCreditNote || doc.DocumentType == domain.DocumentTypeInvoice {
		return nil, domain.ErrInvalidStatusTransition
	}
	if !doc.Status.CanTransition(domain.DocumentStatusInvoiced) {
		return nil, domain.ErrInvalidStatusTransition
	}

	number, err := s.docRepo.NextNumber(ctx, accountID, domain.DocumentTypeInvoice, false)
	if err != nil {
		return nil, err
	}

	doc.DocumentType = domain.DocumentTypeInvoice
	doc.Number = number
	doc.Status = domain.DocumentStatusInvoiced
	if doc.DueDate == nil {
		due := time.Now().UTC().AddDate(0, 0, 30)
		doc.DueDate = &due
	}

	if err := s.docRepo.UpdateStatus(ctx, doc); err != nil {
		return nil, err
	}

	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.withTotals(doc, settings), nil
}

// Send marks a draft document as sent, ensures it has a share token, and
// emails the customer a link when an email address is on file. A missing
// customer email never blocks sending.
func (s *documentService) Send(ctx context.Context, accountID, docID uuid.UUID) (*DocumentWithTotals, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	if doc.IsCreditNote {
		return nil, domain.ErrDocumentImmutable
	}
	if !doc.Status.CanTransition(domain.DocumentStatusSent) {
		return nil, domain.ErrInvalidStatusTransition
	}

	if doc.ShareToken == "" {
		token, err := newShareToken()
		if err != nil {
			return nil, err
		}
		doc.ShareToken = token
		if err := s.docRepo.Update(ctx, doc); err != nil {
			return nil, err
		}
	}

	doc.Status = domain.DocumentStatusSent
	if err := s.docRepo.UpdateStatus(ctx, doc); err != nil {
		return nil, err
	}

	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	result := s.withTotals(doc, settings)

	if doc.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, accountID, *doc.CustomerID)
		if err == nil && customer.Email != "" {
			email := port.DocumentEmail{
				ToEmail:      customer.Email,
				ToName:       customer.Name,
				DocumentType: string(doc.DocumentType),
				Number:       doc.Number,
				TotalDisplay: pricing.FormatGBP(result.Totals.GrandTotal),
				ShareURL:     fmt.Sprintf("%s/share/%s", s.shareBaseURL, doc.ShareToken),
			}
			if err := s.emailSender.SendDocumentEmail(ctx, email); err != nil {
				log.Printf("WARN: sending document email for %s: %v", doc.ID, err)
			}
		}
	}
	return result, nil
}

// Delete removes a document. Only drafts can be deleted; everything after
// draft is part of the financial record.
func (s *documentService) Delete(ctx context.Context, accountID, docID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return err
	}
	if doc.Status != domain.DocumentStatusDraft || doc.IsCreditNote {
		return domain.ErrDocumentImmutable
	}
	return s.docRepo.Delete(ctx, accountID, docID)
}

func (s *documentService) withTotals(doc *domain.Document, settings *domain.AccountSettings) *DocumentWithTotals {
	return &DocumentWithTotals{
		Document: doc,
		Totals:   pricing.Totals(doc, pricing.SettingsFromAccount(settings), doc.Display),
	}
}

// normalizeSections assigns IDs to new sections and items and recomputes every
// line item's extended total. Heading rows always carry a zero total.
func normalizeSections(sections domain.SectionList) domain.SectionList {
	for si := range sections {
		sec := &sections[si]
		if sec.ID == uuid.Nil {
			sec.ID = uuid.New()
		}
		for ii := range sec.Items {
			item := &sec.Items[ii]
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.Total = pricing.LineTotal(item)
		}
		for li := range sec.LabourItems {
			if sec.LabourItems[li].ID == uuid.Nil {
				sec.LabourItems[li].ID = uuid.New()
			}
		}
	}
	return sections
}

func newShareToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
