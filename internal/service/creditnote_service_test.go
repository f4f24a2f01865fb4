package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tradebook/internal/config"
	"tradebook/internal/domain"
	"tradebook/internal/pricing"
	"tradebook/internal/service"
	"tradebook/mocks"
)

func setupCreditNoteService(accountID uuid.UUID) (service.CreditNoteService, *mocks.MockDocumentRepo) {
	docRepo := new(mocks.MockDocumentRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	settingsRepo.On("Get", mock.Anything, accountID).Return(&domain.AccountSettings{
		AccountID:         accountID,
		DefaultLabourRate: 40,
	}, nil)
	settingsSvc := service.NewSettingsService(settingsRepo, config.BillingConfig{})
	return service.NewCreditNoteService(docRepo, settingsSvc), docRepo
}

func paidInvoice(accountID uuid.UUID) *domain.Document {
	return &domain.Document{
		ID:           uuid.New(),
		AccountID:    accountID,
		Number:       "INV-0002",
		DocumentType: domain.DocumentTypeInvoice,
		Status:       domain.DocumentStatusPaid,
		Sections: domain.SectionList{
			{
				ID:   uuid.New(),
				Name: "Works",
				Items: []domain.LineItem{
					{ID: uuid.New(), Name: "Radiator", Quantity: 4, UnitPrice: 25, Total: 100},
				},
				LabourHours: floatPtr(2),
			},
		},
		Display: domain.DefaultDisplayOptions(),
	}
}

// --- Create ---

func TestCreditNoteService_Create_RejectsNonInvoice(t *testing.T) {
	accountID := uuid.New()
	docID := uuid.New()
	svc, docRepo := setupCreditNoteService(accountID)

	docRepo.On("GetByID", mock.Anything, accountID, docID).Return(&domain.Document{
		ID:           docID,
		AccountID:    accountID,
		DocumentType: domain.DocumentTypeQuotation,
	}, nil)

	_, err := svc.Create(context.Background(), accountID, uuid.New(), docID, service.CreateCreditNoteInput{
		Reason: "overcharged",
	})

	assert.ErrorIs(t, err, domain.ErrDocumentNotInvoice)
}

func TestCreditNoteService_Create_RejectsCreditNoteSource(t *testing.T) {
	accountID := uuid.New()
	svc, docRepo := setupCreditNoteService(accountID)

	inv := paidInvoice(accountID)
	inv.IsCreditNote = true
	docRepo.On("GetByID", mock.Anything, accountID, inv.ID).Return(inv, nil)

	_, err := svc.Create(context.Background(), accountID, uuid.New(), inv.ID, service.CreateCreditNoteInput{
		Reason: "double credit",
	})

	assert.ErrorIs(t, err, domain.ErrDocumentNotInvoice)
}

func TestCreditNoteService_Create_RequiresReason(t *testing.T) {
	accountID := uuid.New()
	svc, docRepo := setupCreditNoteService(accountID)

	inv := paidInvoice(accountID)
	docRepo.On("GetByID", mock.Anything, accountID, inv.ID).Return(inv, nil)

	_, err := svc.Create(context.Background(), accountID, uuid.New(), inv.ID, service.CreateCreditNoteInput{})

	assert.ErrorIs(t, err, domain.ErrCreditNoteReasonMissing)
	docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreditNoteService_Create_FullCredit(t *testing.T) {
	accountID := uuid.New()
	userID := uuid.New()
	svc, docRepo := setupCreditNoteService(accountID)

	inv := paidInvoice(accountID)
	docRepo.On("GetByID", mock.Anything, accountID, inv.ID).Return(inv, nil)
	docRepo.On("NextNumber", mock.Anything, accountID, domain.DocumentTypeInvoice, true).
		Return("CN-0001", nil)
	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Create(context.Background(), accountID, userID, inv.ID, service.CreateCreditNoteInput{
		Reason: "job cancelled",
	})

	assert.NoError(t, err)
	note := result.Document
	assert.True(t, note.IsCreditNote)
	assert.Equal(t, "CN-0001", note.Number)
	assert.Equal(t, inv.ID, *note.OriginalInvoiceID)
	assert.Equal(t, "job cancelled", note.CreditNoteReason)
	assert.Equal(t, domain.DocumentStatusPaid, note.Status)
	assert.Equal(t, userID, note.CreatedBy)
	// Materials 100 + 2h labour at the 40/h default.
	assert.InDelta(t, 180.0, result.Totals.GrandTotal, 0.0001)
	assert.NotNil(t, note.CachedTotal)
	assert.InDelta(t, 180.0, *note.CachedTotal, 0.0001)
	docRepo.AssertExpectations(t)
}

func TestCreditNoteService_Create_PartialCreditAdjustsQuantities(t *testing.T) {
	accountID := uuid.New()
	svc, docRepo := setupCreditNoteService(accountID)

	inv := paidInvoice(accountID)
	itemID := inv.Sections[0].Items[0].ID
	sectionID := inv.Sections[0].ID
	docRepo.On("GetByID", mock.Anything, accountID, inv.ID).Return(inv, nil)
	docRepo.On("NextNumber", mock.Anything, accountID, domain.DocumentTypeInvoice, true).
		Return("CN-0002", nil)
	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Create(context.Background(), accountID, uuid.New(), inv.ID, service.CreateCreditNoteInput{
		Reason: "one radiator returned",
		Adjustments: &pricing.CreditAdjustments{
			ItemQuantities:     map[uuid.UUID]float64{itemID: 1},
			SectionLabourHours: map[uuid.UUID]float64{sectionID: 0},
		},
	})

	assert.NoError(t, err)
	// One unit at 25, labour zeroed out.
	assert.InDelta(t, 25.0, result.Totals.GrandTotal, 0.0001)
	// The source invoice's sections must not be mutated by the adjustment.
	assert.Equal(t, 4.0, inv.Sections[0].Items[0].Quantity)
	assert.Equal(t, 2.0, *inv.Sections[0].LabourHours)
}

func TestCreditNoteService_Create_RejectsZeroTotal(t *testing.T) {
	accountID := uuid.New()
	svc, docRepo := setupCreditNoteService(accountID)

	inv := paidInvoice(accountID)
	itemID := inv.Sections[0].Items[0].ID
	sectionID := inv.Sections[0].ID
	docRepo.On("GetByID", mock.Anything, accountID, inv.ID).Return(inv, nil)

	_, err := svc.Create(context.Background(), accountID, uuid.New(), inv.ID, service.CreateCreditNoteInput{
		Reason: "nothing to credit",
		Adjustments: &pricing.CreditAdjustments{
			ItemQuantities:     map[uuid.UUID]float64{itemID: 0},
			SectionLabourHours: map[uuid.UUID]float64{sectionID: 0},
		},
	})

	assert.ErrorIs(t, err, domain.ErrCreditNoteNotPositive)
	docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// --- ListForInvoice ---

func TestCreditNoteService_ListForInvoice_ComputesTotals(t *testing.T) {
	accountID := uuid.New()
	invoiceID := uuid.New()
	svc, docRepo := setupCreditNoteService(accountID)

	docRepo.On("ListCreditNotesForInvoice", mock.Anything, accountID, invoiceID).Return([]domain.Document{
		{
			ID:           uuid.New(),
			AccountID:    accountID,
			IsCreditNote: true,
			Sections: domain.SectionList{
				{ID: uuid.New(), Name: "Credit", PriceOverride: floatPtr(150)},
			},
			Display: domain.DefaultDisplayOptions(),
		},
	}, nil)

	notes, err := svc.ListForInvoice(context.Background(), accountID, invoiceID)

	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.InDelta(t, 150.0, notes[0].Totals.GrandTotal, 0.0001)
}
