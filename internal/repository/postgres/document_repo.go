package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradebook/internal/domain"
	"tradebook/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

const documentColumns = `id, account_id, customer_id, job_id, number, title, document_type, status,
	sections, labour_rate, markup_percent, vat_percent, cis_percent,
	discount, part_payment, display_options,
	due_date, payment_date, amount_paid, payment_method,
	is_credit_note, original_invoice_id, credit_note_reason, recurring_invoice_id,
	share_token, accepted_at, cached_total, created_by, created_at, updated_at`

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES (:id, :account_id, :customer_id, :job_id, :number, :title, :document_type, :status,
			:sections, :labour_rate, :markup_percent, :vat_percent, :cis_percent,
			:discount, :part_payment, :display_options,
			:due_date, :payment_date, :amount_paid, :payment_method,
			:is_credit_note, :original_invoice_id, :credit_note_reason, :recurring_invoice_id,
			:share_token, :accepted_at, :cached_total, :created_by, :created_at, :updated_at)`,
		doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, accountID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND account_id = $2", docID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetByShareToken(ctx context.Context, token string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE share_token = $1 AND share_token <> ''", token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByShareToken: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, accountID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	where := []string{"account_id = $1"}
	args := []interface{}{accountID}

	appendArg := func(clause string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.DocumentType != nil {
		appendArg("document_type = $%d", *filter.DocumentType)
	}
	if filter.Status != nil {
		appendArg("status = $%d", *filter.Status)
	}
	if filter.CustomerID != nil {
		appendArg("customer_id = $%d", *filter.CustomerID)
	}
	if filter.JobID != nil {
		appendArg("job_id = $%d", *filter.JobID)
	}
	if filter.CreditNotes != nil {
		appendArg("is_credit_note = $%d", *filter.CreditNotes)
	}

	clause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE "+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM documents WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		clause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListInvoicedBetween(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents
		 WHERE account_id = $1
		   AND document_type = $2
		   AND status IN ($3, $4)
		   AND created_at >= $5 AND created_at < $6
		 ORDER BY created_at ASC`,
		accountID, domain.DocumentTypeInvoice,
		domain.DocumentStatusInvoiced, domain.DocumentStatusPaid,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListInvoicedBetween: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) ListCreditNotesForInvoice(ctx context.Context, accountID, invoiceID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents
		 WHERE account_id = $1 AND is_credit_note = TRUE AND original_invoice_id = $2
		 ORDER BY created_at ASC`,
		accountID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListCreditNotesForInvoice: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE documents SET
			customer_id = :customer_id,
			job_id = :job_id,
			title = :title,
			sections = :sections,
			labour_rate = :labour_rate,
			markup_percent = :markup_percent,
			vat_percent = :vat_percent,
			cis_percent = :cis_percent,
			discount = :discount,
			part_payment = :part_payment,
			display_options = :display_options,
			due_date = :due_date,
			share_token = :share_token,
			cached_total = :cached_total,
			updated_at = :updated_at
		 WHERE id = :id AND account_id = :account_id`,
		doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE documents SET
			status = :status,
			document_type = :document_type,
			number = :number,
			payment_date = :payment_date,
			amount_paid = :amount_paid,
			payment_method = :payment_method,
			accepted_at = :accepted_at,
			due_date = :due_date,
			updated_at = :updated_at
		 WHERE id = :id AND account_id = :account_id`,
		doc)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateCachedTotal(ctx context.Context, accountID, docID uuid.UUID, total float64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET cached_total = $1 WHERE id = $2 AND account_id = $3",
		total, docID, accountID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateCachedTotal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, accountID, docID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND account_id = $2", docID, accountID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

var numberPrefixes = map[domain.DocumentType]string{
	domain.DocumentTypeEstimate:  "EST",
	domain.DocumentTypeQuotation: "QUO",
	domain.DocumentTypeInvoice:   "INV",
}

// NextNumber issues the next sequential document number for the account,
// per document type. Credit notes number independently under the CN prefix.
func (r *documentRepo) NextNumber(ctx context.Context, accountID uuid.UUID, docType domain.DocumentType, creditNote bool) (string, error) {
	prefix := numberPrefixes[docType]
	if creditNote {
		prefix = "CN"
	}

	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM documents
		 WHERE account_id = $1 AND document_type = $2 AND is_credit_note = $3`,
		accountID, docType, creditNote)
	if err != nil {
		return "", fmt.Errorf("documentRepo.NextNumber: %w", err)
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}
