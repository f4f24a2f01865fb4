package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tradebook/internal/config"
	"tradebook/internal/domain"
	"tradebook/internal/service"
	"tradebook/mocks"
)

// paymentTestSettings keeps VAT and CIS off so the invoice totals in these
// tests are exactly the section prices.
func paymentTestSettings(accountID uuid.UUID) *domain.AccountSettings {
	return &domain.AccountSettings{
		AccountID:         accountID,
		DefaultLabourRate: 40,
	}
}

func setupPaymentService(accountID uuid.UUID) (
	service.PaymentService,
	*mocks.MockPaymentRepo,
	*mocks.MockDocumentRepo,
	*mocks.MockCustomerRepo,
	*mocks.MockEmailSender,
) {
	paymentRepo := new(mocks.MockPaymentRepo)
	docRepo := new(mocks.MockDocumentRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	emailSender := new(mocks.MockEmailSender)
	settingsRepo := new(mocks.MockSettingsRepo)
	settingsRepo.On("Get", mock.Anything, accountID).Return(paymentTestSettings(accountID), nil)
	settingsSvc := service.NewSettingsService(settingsRepo, config.BillingConfig{})
	svc := service.NewPaymentService(paymentRepo, docRepo, customerRepo, settingsSvc, emailSender)
	return svc, paymentRepo, docRepo, customerRepo, emailSender
}

// invoiceWorth builds an invoiced invoice whose grand total is exactly amount.
func invoiceWorth(accountID uuid.UUID, amount float64) *domain.Document {
	return &domain.Document{
		ID:           uuid.New(),
		AccountID:    accountID,
		Number:       "INV-0001",
		DocumentType: domain.DocumentTypeInvoice,
		Status:       domain.DocumentStatusInvoiced,
		Sections: domain.SectionList{
			{ID: uuid.New(), Name: "Works", PriceOverride: &amount},
		},
		Display: domain.DefaultDisplayOptions(),
	}
}

// --- Record ---

func TestPaymentService_Record_RejectsNonInvoice(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, paymentRepo, docRepo, _, _ := setupPaymentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:           docID,
		AccountID:    accountID,
		DocumentType: domain.DocumentTypeEstimate,
		Status:       domain.DocumentStatusSent,
	}, nil)

	_, err := svc.Record(context.Background(), accountID, uuid.New(), docID, service.RecordPaymentInput{
		Amount: 100,
		Method: domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, domain.ErrDocumentNotInvoice)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_RejectsDraftInvoice(t *testing.T) {
	accountID := uuid.New()
	svc, _, docRepo, _, _ := setupPaymentService(accountID)

	doc := invoiceWorth(accountID, 1000)
	doc.Status = domain.DocumentStatusDraft
	docRepo.On("GetByID", mock.Anything, accountID, doc.ID).Return(doc, nil)

	_, err := svc.Record(context.Background(), accountID, uuid.New(), doc.ID, service.RecordPaymentInput{
		Amount: 100,
		Method: domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestPaymentService_Record_RejectsOvershoot(t *testing.T) {
	accountID := uuid.New()
	svc, paymentRepo, docRepo, _, _ := setupPaymentService(accountID)

	doc := invoiceWorth(accountID, 1000)
	docRepo.On("GetByID", mock.Anything, accountID, doc.ID).Return(doc, nil)
	paymentRepo.On("SumByDocument", mock.Anything, accountID, doc.ID).Return(800.0, nil)

	_, err := svc.Record(context.Background(), accountID, uuid.New(), doc.ID, service.RecordPaymentInput{
		Amount: 300,
		Method: domain.PaymentMethodCard,
	})

	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_PartialPaymentLeavesStatus(t *testing.T) {
	accountID := uuid.New()
	userID := uuid.New()
	svc, paymentRepo, docRepo, _, _ := setupPaymentService(accountID)

	doc := invoiceWorth(accountID, 1000)
	docRepo.On("GetByID", mock.Anything, accountID, doc.ID).Return(doc, nil)
	paymentRepo.On("SumByDocument", mock.Anything, accountID, doc.ID).Return(0.0, nil)
	paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Amount == 400 && p.DocumentID == doc.ID && p.CreatedBy == userID
	})).Return(nil)
	paymentRepo.On("ListByDocument", mock.Anything, accountID, doc.ID).Return([]domain.Payment{
		{Amount: 400},
	}, nil)

	summary, err := svc.Record(context.Background(), accountID, userID, doc.ID, service.RecordPaymentInput{
		Amount: 400,
		Method: domain.PaymentMethodBankTransfer,
	})

	assert.NoError(t, err)
	assert.InDelta(t, 1000.0, summary.GrandTotal, 0.0001)
	assert.InDelta(t, 400.0, summary.Paid, 0.0001)
	assert.InDelta(t, 600.0, summary.Owed, 0.0001)
	docRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_Record_SettlingPaymentFlipsToPaid(t *testing.T) {
	accountID := uuid.New()
	customerID := uuid.New()
	svc, paymentRepo, docRepo, customerRepo, emailSender := setupPaymentService(accountID)

	doc := invoiceWorth(accountID, 1000)
	doc.CustomerID = &customerID
	docRepo.On("GetByID", mock.Anything, accountID, doc.ID).Return(doc, nil)
	paymentRepo.On("SumByDocument", mock.Anything, accountID, doc.ID).Return(600.0, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.Status == domain.DocumentStatusPaid && d.AmountPaid != nil && *d.AmountPaid == 1000
	})).Return(nil)
	customerRepo.On("GetByID", mock.Anything, accountID, customerID).Return(&domain.Customer{
		ID:    customerID,
		Name:  "J Smith",
		Email: "jsmith@example.com",
	}, nil)
	emailSender.On("SendReceiptEmail", mock.Anything, "jsmith@example.com", "J Smith", "INV-0001", mock.Anything).
		Return(nil)
	paymentRepo.On("ListByDocument", mock.Anything, accountID, doc.ID).Return([]domain.Payment{
		{Amount: 600}, {Amount: 400},
	}, nil)

	summary, err := svc.Record(context.Background(), accountID, uuid.New(), doc.ID, service.RecordPaymentInput{
		Amount: 400,
		Method: domain.PaymentMethodCash,
	})

	assert.NoError(t, err)
	assert.InDelta(t, 0.0, summary.Owed, 0.0001)
	docRepo.AssertExpectations(t)
	emailSender.AssertExpectations(t)
}

func TestPaymentService_Record_SettlesWithinEpsilon(t *testing.T) {
	accountID := uuid.New()
	svc, paymentRepo, docRepo, _, _ := setupPaymentService(accountID)

	doc := invoiceWorth(accountID, 1000)
	docRepo.On("GetByID", mock.Anything, accountID, doc.ID).Return(doc, nil)
	paymentRepo.On("SumByDocument", mock.Anything, accountID, doc.ID).Return(0.0, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
	paymentRepo.On("ListByDocument", mock.Anything, accountID, doc.ID).Return([]domain.Payment{
		{Amount: 999.998},
	}, nil)

	_, err := svc.Record(context.Background(), accountID, uuid.New(), doc.ID, service.RecordPaymentInput{
		Amount: 999.998,
		Method: domain.PaymentMethodBankTransfer,
	})

	assert.NoError(t, err)
	docRepo.AssertCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_ReceiptFailureDoesNotFailPayment(t *testing.T) {
	accountID := uuid.New()
	customerID := uuid.New()
	svc, paymentRepo, docRepo, customerRepo, emailSender := setupPaymentService(accountID)

	doc := invoiceWorth(accountID, 500)
	doc.CustomerID = &customerID
	docRepo.On("GetByID", mock.Anything, accountID, doc.ID).Return(doc, nil)
	paymentRepo.On("SumByDocument", mock.Anything, accountID, doc.ID).Return(0.0, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("GetByID", mock.Anything, accountID, customerID).Return(&domain.Customer{
		ID:    customerID,
		Email: "j@example.com",
	}, nil)
	emailSender.On("SendReceiptEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("ses unavailable"))
	paymentRepo.On("ListByDocument", mock.Anything, accountID, doc.ID).Return([]domain.Payment{
		{Amount: 500},
	}, nil)

	_, err := svc.Record(context.Background(), accountID, uuid.New(), doc.ID, service.RecordPaymentInput{
		Amount: 500,
		Method: domain.PaymentMethodCash,
	})

	assert.NoError(t, err)
}

// --- Summary ---

func TestPaymentService_Summary_DerivesOwedFromEngine(t *testing.T) {
	accountID := uuid.New()
	svc, paymentRepo, docRepo, _, _ := setupPaymentService(accountID)

	doc := invoiceWorth(accountID, 1200)
	docRepo.On("GetByID", mock.Anything, accountID, doc.ID).Return(doc, nil)
	paymentRepo.On("ListByDocument", mock.Anything, accountID, doc.ID).Return([]domain.Payment{
		{Amount: 200}, {Amount: 300},
	}, nil)

	summary, err := svc.Summary(context.Background(), accountID, doc.ID)

	assert.NoError(t, err)
	assert.InDelta(t, 1200.0, summary.GrandTotal, 0.0001)
	assert.InDelta(t, 500.0, summary.Paid, 0.0001)
	assert.InDelta(t, 700.0, summary.Owed, 0.0001)
	assert.Len(t, summary.Payments, 2)
}
