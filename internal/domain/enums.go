package domain

// DocumentType distinguishes the client-facing document kinds.
type DocumentType string

const (
	DocumentTypeEstimate  DocumentType = "estimate"
	DocumentTypeQuotation DocumentType = "quotation"
	DocumentTypeInvoice   DocumentType = "invoice"
)

// DocumentStatus represents the document lifecycle.
// draft → sent → accepted/declined → invoiced → paid; declined is terminal.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusSent     DocumentStatus = "sent"
	DocumentStatusAccepted DocumentStatus = "accepted"
	DocumentStatusDeclined DocumentStatus = "declined"
	DocumentStatusInvoiced DocumentStatus = "invoiced"
	DocumentStatusPaid     DocumentStatus = "paid"
)

// statusTransitions maps each status to the statuses it may move to.
var statusTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusDraft:    {DocumentStatusSent, DocumentStatusAccepted, DocumentStatusDeclined},
	DocumentStatusSent:     {DocumentStatusAccepted, DocumentStatusDeclined},
	DocumentStatusAccepted: {DocumentStatusInvoiced, DocumentStatusPaid},
	DocumentStatusDeclined: {},
	DocumentStatusInvoiced: {DocumentStatusPaid},
	DocumentStatusPaid:     {},
}

// CanTransition reports whether a document may move from its current status to target.
func (s DocumentStatus) CanTransition(target DocumentStatus) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// DiscountType is how a document-level discount is expressed.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PartPaymentType is how a due-now part payment is expressed.
type PartPaymentType string

const (
	PartPaymentTypePercentage PartPaymentType = "percentage"
	PartPaymentTypeFixed      PartPaymentType = "fixed"
)

// MilestoneStatus represents the lifecycle of a payment milestone.
type MilestoneStatus string

const (
	MilestoneStatusPending  MilestoneStatus = "pending"
	MilestoneStatusInvoiced MilestoneStatus = "invoiced"
	MilestoneStatusPaid     MilestoneStatus = "paid"
)

// PaymentMethod records how a payment was taken.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodOther        PaymentMethod = "other"
)

// UserRole defines the role hierarchy within an account.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)
