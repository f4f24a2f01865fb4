package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a single trade business.
type Account struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to an account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	AccountID    uuid.UUID `db:"account_id" json:"account_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AccountSettings holds the account-level toggles and defaults that feed the
// pricing engine. They are passed into calculations explicitly, never read
// from ambient state.
type AccountSettings struct {
	AccountID         uuid.UUID `db:"account_id" json:"account_id"`
	EnableVat         bool      `db:"enable_vat" json:"enable_vat"`
	EnableCis         bool      `db:"enable_cis" json:"enable_cis"`
	DefaultLabourRate float64   `db:"default_labour_rate" json:"default_labour_rate"`
	DefaultVatPercent float64   `db:"default_vat_percent" json:"default_vat_percent"`
	DefaultCisPercent float64   `db:"default_cis_percent" json:"default_cis_percent"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Customer is the billed party on a document.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AccountID uuid.UUID `db:"account_id" json:"account_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	Postcode  string    `db:"postcode" json:"postcode"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Job groups documents, payments, and expenses for a piece of work.
type Job struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	AccountID  uuid.UUID  `db:"account_id" json:"account_id"`
	CustomerID *uuid.UUID `db:"customer_id" json:"customer_id"`
	Title      string     `db:"title" json:"title"`
	Address    string     `db:"address" json:"address"`
	Notes      string     `db:"notes" json:"notes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Payment is a recorded payment against an invoice. Amount owed is always
// derived as engine grand total minus the sum of payments, not stored.
type Payment struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	AccountID  uuid.UUID     `db:"account_id" json:"account_id"`
	DocumentID uuid.UUID     `db:"document_id" json:"document_id"`
	Amount     float64       `db:"amount" json:"amount"`
	Method     PaymentMethod `db:"method" json:"method"`
	PaidAt     time.Time     `db:"paid_at" json:"paid_at"`
	Note       string        `db:"note" json:"note"`
	CreatedBy  uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// PaymentMilestone is a staged payment obligation derived from a document's
// total. FixedAmount wins over Percentage when set; the engine never checks
// that milestone amounts sum to the document total.
type PaymentMilestone struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	AccountID       uuid.UUID       `db:"account_id" json:"account_id"`
	DocumentID      uuid.UUID       `db:"document_id" json:"document_id"`
	Label           string          `db:"label" json:"label"`
	FixedAmount     *float64        `db:"fixed_amount" json:"fixed_amount"`
	Percentage      *float64        `db:"percentage" json:"percentage"`
	DueDate         *time.Time      `db:"due_date" json:"due_date"`
	Status          MilestoneStatus `db:"status" json:"status"`
	LinkedInvoiceID *uuid.UUID      `db:"linked_invoice_id" json:"linked_invoice_id"`
	PaidAt          *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Expense is an externally tracked cost deducted in profit reporting.
type Expense struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	AccountID   uuid.UUID  `db:"account_id" json:"account_id"`
	JobID       *uuid.UUID `db:"job_id" json:"job_id"`
	Description string     `db:"description" json:"description"`
	Amount      float64    `db:"amount" json:"amount"`
	IncurredAt  time.Time  `db:"incurred_at" json:"incurred_at"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
