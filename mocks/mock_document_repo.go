package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, accountID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, accountID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) GetByShareToken(ctx context.Context, token string) (*domain.Document, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) List(ctx context.Context, accountID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, accountID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentRepo) ListInvoicedBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Document, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) ListCreditNotesForInvoice(ctx context.Context, accountID, invoiceID uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, accountID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) UpdateStatus(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) UpdateCachedTotal(ctx context.Context, accountID, docID uuid.UUID, total float64) error {
	args := m.Called(ctx, accountID, docID, total)
	return args.Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, accountID, docID uuid.UUID) error {
	args := m.Called(ctx, accountID, docID)
	return args.Error(0)
}

func (m *MockDocumentRepo) NextNumber(ctx context.Context, accountID uuid.UUID, docType domain.DocumentType, creditNote bool) (string, error) {
	args := m.Called(ctx, accountID, docType, creditNote)
	return args.String(0), args.Error(1)
}
