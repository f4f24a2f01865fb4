package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/port"
	"tradebook/internal/pricing"
)

// paymentEpsilon absorbs float noise when deciding whether an invoice is
// settled or a payment overshoots the balance.
const paymentEpsilon = 0.005

// RecordPaymentInput is the DTO for recording a payment against an invoice.
type RecordPaymentInput struct {
	Amount float64              `json:"amount" binding:"required,gt=0"`
	Method domain.PaymentMethod `json:"method" binding:"required,oneof=cash card bank_transfer cheque other"`
	PaidAt *time.Time           `json:"paid_at"`
	Note   string               `json:"note"`
}

// PaymentSummary reports an invoice's payment position. Owed is always
// derived as the engine grand total minus the sum of recorded payments.
type PaymentSummary struct {
	GrandTotal float64          `json:"grand_total"`
	Paid       float64          `json:"paid"`
	Owed       float64          `json:"owed"`
	Payments   []domain.Payment `json:"payments"`
}

// PaymentService defines the payment recording contract.
type PaymentService interface {
	Record(ctx context.Context, accountID, userID, docID uuid.UUID, input RecordPaymentInput) (*PaymentSummary, error)
	Summary(ctx context.Context, accountID, docID uuid.UUID) (*PaymentSummary, error)
}

type paymentService struct {
	paymentRepo  port.PaymentRepository
	docRepo      port.DocumentRepository
	customerRepo port.CustomerRepository
	settingsSvc  SettingsService
	emailSender  port.EmailSender
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(
	paymentRepo port.PaymentRepository,
	docRepo port.DocumentRepository,
	customerRepo port.CustomerRepository,
	settingsSvc SettingsService,
	emailSender port.EmailSender,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		docRepo:      docRepo,
		customerRepo: customerRepo,
		settingsSvc:  settingsSvc,
		emailSender:  emailSender,
	}
}

// Record books a payment against an invoice. When the payment settles the
// remaining balance the invoice flips to paid and the customer receives a
// receipt email.
func (s *paymentService) Record(ctx context.Context, accountID, userID, docID uuid.UUID, input RecordPaymentInput) (*PaymentSummary, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	if doc.DocumentType != domain.DocumentTypeInvoice || doc.IsCreditNote {
		return nil, domain.ErrDocumentNotInvoice
	}
	if doc.Status != domain.DocumentStatusInvoiced && doc.Status != domain.DocumentStatusAccepted {
		return nil, domain.ErrInvalidStatusTransition
	}

	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	grandTotal := pricing.GrandTotal(doc, pricing.SettingsFromAccount(settings))

	paid, err := s.paymentRepo.SumByDocument(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	owed := grandTotal - paid
	if input.Amount > owed+paymentEpsilon {
		return nil, domain.ErrPaymentExceedsBalance
	}

	paidAt := time.Now().UTC()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}
	payment := &domain.Payment{
		ID:         uuid.New(),
		AccountID:  accountID,
		DocumentID: docID,
		Amount:     input.Amount,
		Method:     input.Method,
		PaidAt:     paidAt,
		Note:       input.Note,
		CreatedBy:  userID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if owed-input.Amount <= paymentEpsilon {
		if !doc.Status.CanTransition(domain.DocumentStatusPaid) {
			return nil, domain.ErrInvalidStatusTransition
		}
		doc.Status = domain.DocumentStatusPaid
		doc.PaymentDate = &paidAt
		doc.AmountPaid = &grandTotal
		method := input.Method
		doc.PaymentMethod = &method
		if err := s.docRepo.UpdateStatus(ctx, doc); err != nil {
			return nil, err
		}
		s.sendReceipt(ctx, doc, grandTotal)
	}

	return s.summarize(ctx, accountID, docID, grandTotal)
}

func (s *paymentService) Summary(ctx context.Context, accountID, docID uuid.UUID) (*PaymentSummary, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	grandTotal := pricing.GrandTotal(doc, pricing.SettingsFromAccount(settings))
	return s.summarize(ctx, accountID, docID, grandTotal)
}

func (s *paymentService) summarize(ctx context.Context, accountID, docID uuid.UUID, grandTotal float64) (*PaymentSummary, error) {
	payments, err := s.paymentRepo.ListByDocument(ctx, accountID, docID)
	if err != nil {
		return nil, err
	}
	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}
	return &PaymentSummary{
		GrandTotal: grandTotal,
		Paid:       paid,
		Owed:       grandTotal - paid,
		Payments:   payments,
	}, nil
}

func (s *paymentService) sendReceipt(ctx context.Context, doc *domain.Document, total float64) {
	if doc.CustomerID == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, doc.AccountID, *doc.CustomerID)
	if err != nil || customer.Email == "" {
		return
	}
	if err := s.emailSender.SendReceiptEmail(ctx, customer.Email, customer.Name, doc.Number, pricing.FormatGBP(total)); err != nil {
		log.Printf("WARN: sending receipt email for %s: %v", doc.ID, err)
	}
}
