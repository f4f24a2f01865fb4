package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LineItem is an atomic priced unit within a section. Total is always
// Quantity × UnitPrice; it is recomputed on every mutation and never set
// directly (section-level overrides go through Section.PriceOverride).
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit,omitempty"`
	UnitPrice   float64   `json:"unit_price"`
	Total       float64   `json:"total"`
	IsHeading   bool      `json:"is_heading,omitempty"`
	AIGenerated bool      `json:"ai_generated,omitempty"`
}

// LabourItem is an itemized unit of labour within a section. Rate is an
// optional per-item override; nil falls back to the section, document, then
// account default rate.
type LabourItem struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Hours       float64   `json:"hours"`
	Rate        *float64  `json:"rate,omitempty"`
}

// Section is a named grouping of line items plus section-level labour.
//
// Labour cost precedence, highest to lowest: itemized LabourItems, then
// LabourCost, then LabourHours × effective rate. PriceOverride, when set,
// replaces the computed materials+labour value everywhere totals are summed;
// nil means "not overridden" (a zero override is a legitimate zero).
type Section struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Items         []LineItem   `json:"items"`
	LabourItems   []LabourItem `json:"labour_items,omitempty"`
	LabourHours   *float64     `json:"labour_hours,omitempty"`
	LabourCost    *float64     `json:"labour_cost,omitempty"`
	LabourRate    *float64     `json:"labour_rate,omitempty"`
	PriceOverride *float64     `json:"price_override,omitempty"`
}

// SectionList is the ordered section collection, stored as a JSONB column.
type SectionList []Section

// Value implements driver.Valuer for JSONB storage.
func (s SectionList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (s *SectionList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for SectionList", src)
	}
}

// Discount is the document-level discount. An empty Type means no discount.
type Discount struct {
	Type        DiscountType `json:"type,omitempty"`
	Amount      float64      `json:"value,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Value implements driver.Valuer for JSONB storage.
func (d Discount) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (d *Discount) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = Discount{}
		return nil
	default:
		return fmt.Errorf("unsupported type %T for Discount", src)
	}
}

// PartPaymentConfig controls the single due-now part payment on a document.
// A nil Amount behaves the same as Enabled=false.
type PartPaymentConfig struct {
	Enabled bool            `json:"enabled"`
	Type    PartPaymentType `json:"type,omitempty"`
	Amount  *float64        `json:"value,omitempty"`
	Label   string          `json:"label,omitempty"`
}

// Value implements driver.Valuer for JSONB storage.
func (p PartPaymentConfig) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (p *PartPaymentConfig) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = PartPaymentConfig{}
		return nil
	default:
		return fmt.Errorf("unsupported type %T for PartPaymentConfig", src)
	}
}

// DisplayOptions are per-document flags controlling which lines appear on the
// rendered document. ShowVat/ShowCis also gate the corresponding amounts in
// the totals pipeline; ShowMaterials/ShowLabour affect rendering only.
type DisplayOptions struct {
	ShowVat       bool `json:"show_vat"`
	ShowCis       bool `json:"show_cis"`
	ShowMaterials bool `json:"show_materials"`
	ShowLabour    bool `json:"show_labour"`
}

// DefaultDisplayOptions returns the display flags applied to new documents.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{ShowVat: true, ShowCis: true, ShowMaterials: true, ShowLabour: true}
}

// Value implements driver.Valuer for JSONB storage.
func (o DisplayOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (o *DisplayOptions) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	case nil:
		*o = DefaultDisplayOptions()
		return nil
	default:
		return fmt.Errorf("unsupported type %T for DisplayOptions", src)
	}
}

// Document is a quote, estimate, invoice, or credit note. Its grand total is
// always derivable from Sections plus the discount/tax settings; CachedTotal
// is a read optimization for list views and is never treated as ground truth.
type Document struct {
	ID                 uuid.UUID         `db:"id" json:"id"`
	AccountID          uuid.UUID         `db:"account_id" json:"account_id"`
	CustomerID         *uuid.UUID        `db:"customer_id" json:"customer_id"`
	JobID              *uuid.UUID        `db:"job_id" json:"job_id"`
	Number             string            `db:"number" json:"number"`
	Title              string            `db:"title" json:"title"`
	DocumentType       DocumentType      `db:"document_type" json:"document_type"`
	Status             DocumentStatus    `db:"status" json:"status"`
	Sections           SectionList       `db:"sections" json:"sections"`
	LabourRate         float64           `db:"labour_rate" json:"labour_rate"`
	MarkupPercent      float64           `db:"markup_percent" json:"markup_percent"`
	VatPercent         float64           `db:"vat_percent" json:"vat_percent"`
	CisPercent         float64           `db:"cis_percent" json:"cis_percent"`
	Discount           Discount          `db:"discount" json:"discount"`
	PartPayment        PartPaymentConfig `db:"part_payment" json:"part_payment"`
	Display            DisplayOptions    `db:"display_options" json:"display_options"`
	DueDate            *time.Time        `db:"due_date" json:"due_date"`
	PaymentDate        *time.Time        `db:"payment_date" json:"payment_date"`
	AmountPaid         *float64          `db:"amount_paid" json:"amount_paid"`
	PaymentMethod      *PaymentMethod    `db:"payment_method" json:"payment_method"`
	IsCreditNote       bool              `db:"is_credit_note" json:"is_credit_note"`
	OriginalInvoiceID  *uuid.UUID        `db:"original_invoice_id" json:"original_invoice_id"`
	CreditNoteReason   string            `db:"credit_note_reason" json:"credit_note_reason"`
	RecurringInvoiceID *uuid.UUID        `db:"recurring_invoice_id" json:"recurring_invoice_id"`
	ShareToken         string            `db:"share_token" json:"-"`
	AcceptedAt         *time.Time        `db:"accepted_at" json:"accepted_at"`
	CachedTotal        *float64          `db:"cached_total" json:"cached_total"`
	CreatedBy          uuid.UUID         `db:"created_by" json:"created_by"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updated_at"`
}

// Editable reports whether the document's contents may still change.
// Paid and declined documents, and credit notes, are frozen.
func (d *Document) Editable() bool {
	if d.IsCreditNote {
		return false
	}
	return d.Status != DocumentStatusPaid && d.Status != DocumentStatusDeclined
}
