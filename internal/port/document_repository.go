package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain"
)

// DocumentFilter narrows document list queries.
type DocumentFilter struct {
	DocumentType *domain.DocumentType
	Status       *domain.DocumentStatus
	CustomerID   *uuid.UUID
	JobID        *uuid.UUID
	CreditNotes  *bool
}

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, accountID, docID uuid.UUID) (*domain.Document, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Document, error)
	List(ctx context.Context, accountID uuid.UUID, filter DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	ListInvoicedBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Document, error)
	ListCreditNotesForInvoice(ctx context.Context, accountID, invoiceID uuid.UUID) ([]domain.Document, error)
	Update(ctx context.Context, doc *domain.Document) error
	UpdateStatus(ctx context.Context, doc *domain.Document) error
	UpdateCachedTotal(ctx context.Context, accountID, docID uuid.UUID, total float64) error
	Delete(ctx context.Context, accountID, docID uuid.UUID) error
	NextNumber(ctx context.Context, accountID uuid.UUID, docType domain.DocumentType, creditNote bool) (string, error)
}
