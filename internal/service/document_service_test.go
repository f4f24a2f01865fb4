package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tradebook/internal/config"
	"tradebook/internal/domain"
	"tradebook/internal/port"
	"tradebook/internal/service"
	"tradebook/mocks"
)

func testSettings(accountID uuid.UUID) *domain.AccountSettings {
	return &domain.AccountSettings{
		AccountID:         accountID,
		EnableVat:         true,
		EnableCis:         false,
		DefaultLabourRate: 40,
		DefaultVatPercent: 20,
		DefaultCisPercent: 20,
	}
}

func setupDocumentService(accountID uuid.UUID) (
	service.DocumentService,
	*mocks.MockDocumentRepo,
	*mocks.MockCustomerRepo,
	*mocks.MockEmailSender,
) {
	docRepo := new(mocks.MockDocumentRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	emailSender := new(mocks.MockEmailSender)
	settingsRepo := new(mocks.MockSettingsRepo)
	settingsRepo.On("Get", mock.Anything, accountID).Return(testSettings(accountID), nil)
	settingsSvc := service.NewSettingsService(settingsRepo, config.BillingConfig{})
	svc := service.NewDocumentService(docRepo, customerRepo, settingsSvc, emailSender, "https://app.example.com")
	return svc, docRepo, customerRepo, emailSender
}

func floatPtr(v float64) *float64 { return &v }

// --- Create ---

func TestDocumentService_Create_ComputesTotalsAndDefaults(t *testing.T) {
	accountID := uuid.New()
	userID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("NextNumber", mock.Anything, accountID, domain.DocumentTypeEstimate, false).
		Return("EST-0001", nil)
	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := service.CreateDocumentInput{
		Title:        "Bathroom refit",
		DocumentType: domain.DocumentTypeEstimate,
		Sections: domain.SectionList{
			{
				Name: "First fix",
				Items: []domain.LineItem{
					{Name: "Copper pipe", Quantity: 2, UnitPrice: 50},
				},
				LabourHours: floatPtr(3),
			},
		},
	}
	result, err := svc.Create(context.Background(), accountID, userID, input)

	assert.NoError(t, err)
	doc := result.Document
	assert.Equal(t, "EST-0001", doc.Number)
	assert.Equal(t, domain.DocumentStatusDraft, doc.Status)
	assert.Equal(t, 20.0, doc.VatPercent)
	assert.Equal(t, 20.0, doc.CisPercent)
	assert.Equal(t, userID, doc.CreatedBy)
	assert.NotEqual(t, uuid.Nil, doc.Sections[0].ID)
	assert.NotEqual(t, uuid.Nil, doc.Sections[0].Items[0].ID)
	assert.Equal(t, 100.0, doc.Sections[0].Items[0].Total)

	// Materials 100 + labour 3h at the 40/h account default = 220; VAT at 20%.
	assert.InDelta(t, 264.0, result.Totals.GrandTotal, 0.0001)
	assert.NotNil(t, doc.CachedTotal)
	assert.InDelta(t, 264.0, *doc.CachedTotal, 0.0001)
	docRepo.AssertExpectations(t)
}

func TestDocumentService_Create_ExplicitRatesOverrideDefaults(t *testing.T) {
	accountID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("NextNumber", mock.Anything, accountID, domain.DocumentTypeInvoice, false).
		Return("INV-0001", nil)
	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := service.CreateDocumentInput{
		Title:        "Boiler install",
		DocumentType: domain.DocumentTypeInvoice,
		LabourRate:   floatPtr(55),
		VatPercent:   floatPtr(5),
		CisPercent:   floatPtr(30),
	}
	result, err := svc.Create(context.Background(), accountID, uuid.New(), input)

	assert.NoError(t, err)
	assert.Equal(t, 55.0, result.Document.LabourRate)
	assert.Equal(t, 5.0, result.Document.VatPercent)
	assert.Equal(t, 30.0, result.Document.CisPercent)
}

// --- Update ---

func TestDocumentService_Update_RejectsPaidDocument(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:        docID,
		AccountID: accountID,
		Status:    domain.DocumentStatusPaid,
	}, nil)

	_, err := svc.Update(context.Background(), accountID, docID, service.UpdateDocumentInput{Title: "x"})

	assert.ErrorIs(t, err, domain.ErrDocumentImmutable)
	docRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDocumentService_Update_RejectsCreditNote(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:           docID,
		AccountID:    accountID,
		Status:       domain.DocumentStatusDraft,
		IsCreditNote: true,
	}, nil)

	_, err := svc.Update(context.Background(), accountID, docID, service.UpdateDocumentInput{Title: "x"})

	assert.ErrorIs(t, err, domain.ErrDocumentImmutable)
}

// --- UpdateStatus ---

func TestDocumentService_UpdateStatus_RejectsInvalidTransition(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:        docID,
		AccountID: accountID,
		Status:    domain.DocumentStatusDraft,
	}, nil)

	_, err := svc.UpdateStatus(context.Background(), accountID, docID, service.UpdateStatusInput{
		Status: domain.DocumentStatusInvoiced,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	docRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestDocumentService_UpdateStatus_AcceptedStampsTimestamp(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:        docID,
		AccountID: accountID,
		Status:    domain.DocumentStatusSent,
	}, nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateStatus(context.Background(), accountID, docID, service.UpdateStatusInput{
		Status: domain.DocumentStatusAccepted,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusAccepted, result.Document.Status)
	assert.NotNil(t, result.Document.AcceptedAt)
	docRepo.AssertExpectations(t)
}

func TestDocumentService_UpdateStatus_PaidRecordsPaymentDetails(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:           docID,
		AccountID:    accountID,
		DocumentType: domain.DocumentTypeInvoice,
		Status:       domain.DocumentStatusInvoiced,
		VatPercent:   20,
		Sections: domain.SectionList{
			{ID: uuid.New(), Name: "Works", PriceOverride: floatPtr(500)},
		},
		Display: domain.DefaultDisplayOptions(),
	}, nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)

	method := domain.PaymentMethodBankTransfer
	result, err := svc.UpdateStatus(context.Background(), accountID, docID, service.UpdateStatusInput{
		Status:        domain.DocumentStatusPaid,
		PaymentMethod: &method,
	})

	assert.NoError(t, err)
	doc := result.Document
	assert.Equal(t, domain.DocumentStatusPaid, doc.Status)
	assert.NotNil(t, doc.PaymentDate)
	assert.NotNil(t, doc.AmountPaid)
	assert.InDelta(t, 600.0, *doc.AmountPaid, 0.0001) // 500 + 20% VAT
	assert.Equal(t, &method, doc.PaymentMethod)
}

// --- ConvertToInvoice ---

func TestDocumentService_ConvertToInvoice_RenumbersAndDefaultsDueDate(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:           docID,
		AccountID:    accountID,
		Number:       "QUO-0003",
		DocumentType: domain.DocumentTypeQuotation,
		Status:       domain.DocumentStatusAccepted,
	}, nil)
	docRepo.On("NextNumber", mock.Anything, accountID, domain.DocumentTypeInvoice, false).
		Return("INV-0007", nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ConvertToInvoice(context.Background(), accountID, docID)

	assert.NoError(t, err)
	doc := result.Document
	assert.Equal(t, domain.DocumentTypeInvoice, doc.DocumentType)
	assert.Equal(t, "INV-0007", doc.Number)
	assert.Equal(t, domain.DocumentStatusInvoiced, doc.Status)
	assert.NotNil(t, doc.DueDate)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), *doc.DueDate, time.Minute)
}

func TestDocumentService_ConvertToInvoice_RejectsInvoice(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:           docID,
		AccountID:    accountID,
		DocumentType: domain.DocumentTypeInvoice,
		Status:       domain.DocumentStatusAccepted,
	}, nil)

	_, err := svc.ConvertToInvoice(context.Background(), accountID, docID)

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

// --- Send ---

func TestDocumentService_Send_GeneratesTokenAndEmailsCustomer(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	customerID := uuid.New()
	svc, docRepo, customerRepo, emailSender := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:           docID,
		AccountID:    accountID,
		CustomerID:   &customerID,
		Number:       "EST-0004",
		DocumentType: domain.DocumentTypeEstimate,
		Status:       domain.DocumentStatusDraft,
		Display:      domain.DefaultDisplayOptions(),
	}, nil)
	docRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("GetByID", mock.Anything, accountID, customerID).Return(&domain.Customer{
		ID:    customerID,
		Name:  "J Smith",
		Email: "jsmith@example.com",
	}, nil)
	emailSender.On("SendDocumentEmail", mock.Anything, mock.MatchedBy(func(e port.DocumentEmail) bool {
		return e.ToEmail == "jsmith@example.com" &&
			e.Number == "EST-0004" &&
			strings.HasPrefix(e.ShareURL, "https://app.example.com/share/")
	})).Return(nil)

	result, err := svc.Send(context.Background(), accountID, docID)

	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusSent, result.Document.Status)
	assert.Len(t, result.Document.ShareToken, 48)
	docRepo.AssertExpectations(t)
	emailSender.AssertExpectations(t)
}

func TestDocumentService_Send_NoCustomerEmailStillSends(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	customerID := uuid.New()
	svc, docRepo, customerRepo, emailSender := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:         docID,
		AccountID:  accountID,
		CustomerID: &customerID,
		Status:     domain.DocumentStatusDraft,
		ShareToken: "existing-token",
		Display:    domain.DefaultDisplayOptions(),
	}, nil)
	docRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("GetByID", mock.Anything, accountID, customerID).Return(&domain.Customer{
		ID:   customerID,
		Name: "No Email",
	}, nil)

	result, err := svc.Send(context.Background(), accountID, docID)

	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusSent, result.Document.Status)
	// The existing token is reused, so no content update is needed.
	docRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	emailSender.AssertNotCalled(t, "SendDocumentEmail", mock.Anything, mock.Anything)
}

// --- Delete ---

func TestDocumentService_Delete_DraftOnly(t *testing.T) {
	accountID := uuid.New()
	draftID := uuid.New()
	sentID := uuid.New()
	svc, docRepo, _, _ := setupDocumentService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, draftID).Return(&domain.Document{
		ID: draftID, AccountID: accountID, Status: domain.DocumentStatusDraft,
	}, nil)
	docRepo.On("GetByID", mock.Anything, accountID, sentID).Return(&domain.Document{
		ID: sentID, AccountID: accountID, Status: domain.DocumentStatusSent,
	}, nil)
	docRepo.On("Delete", mock.Anything, accountID, draftID).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), accountID, draftID))
	assert.ErrorIs(t, svc.Delete(context.Background(), accountID, sentID), domain.ErrDocumentImmutable)
	docRepo.AssertExpectations(t)
}
