package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/pdfexport"
	"tradebook/internal/port"
	"tradebook/internal/pricing"
)

// ExportService renders documents as PDFs, locally for direct download and
// via object storage for presigned share links.
type ExportService interface {
	DocumentPDF(ctx context.Context, accountID, docID uuid.UUID) ([]byte, string, error)
	ShareDocumentPDF(ctx context.Context, accountID, docID uuid.UUID) (string, error)
}

type exportService struct {
	docRepo       port.DocumentRepository
	customerRepo  port.CustomerRepository
	accountRepo   port.AccountRepository
	settingsSvc   SettingsService
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	docRepo port.DocumentRepository,
	customerRepo port.CustomerRepository,
	accountRepo port.AccountRepository,
	settingsSvc SettingsService,
	storage port.ObjectStorage,
	bucket string,
	presignExpiry int64,
) ExportService {
	return &exportService{
		docRepo:       docRepo,
		customerRepo:  customerRepo,
		accountRepo:   accountRepo,
		settingsSvc:   settingsSvc,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

// DocumentPDF renders the document and returns the bytes plus a download
// filename.
func (s *exportService) DocumentPDF(ctx context.Context, accountID, docID uuid.UUID) ([]byte, string, error) {
	data, doc, err := s.render(ctx, accountID, docID)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.pdf", doc.Number), nil
}

// ShareDocumentPDF renders the document, uploads it to object storage, and
// returns a presigned URL for the customer.
func (s *exportService) ShareDocumentPDF(ctx context.Context, accountID, docID uuid.UUID) (string, error) {
	data, doc, err := s.render(ctx, accountID, docID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("documents/%s/%s.pdf", accountID, doc.ID)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", domain.ErrUploadFailed
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning document pdf: %w", err)
	}
	return url, nil
}

func (s *exportService) render(ctx context.Context, accountID, docID uuid.UUID) ([]byte, *domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, accountID, docID)
	if err != nil {
		return nil, nil, err
	}
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	var customer *domain.Customer
	if doc.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, accountID, *doc.CustomerID)
		if err != nil {
			customer = nil
		}
	}

	data, err := pdfexport.Render(pdfexport.RenderInput{
		Document:    doc,
		Totals:      pricing.Totals(doc, pricing.SettingsFromAccount(settings), doc.Display),
		AccountName: account.Name,
		Customer:    customer,
	})
	if err != nil {
		return nil, nil, err
	}
	return data, doc, nil
}
