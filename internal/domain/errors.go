package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrAccountInactive         = errors.New("account is inactive")
	ErrUserInactive            = errors.New("user is inactive")
	ErrDuplicateEmail          = errors.New("email already exists for this account")
	ErrDuplicateAccountSlug    = errors.New("account slug already exists")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrJobNotFound             = errors.New("job not found")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrDocumentNotInvoice      = errors.New("document is not an invoice")
	ErrDocumentImmutable       = errors.New("document can no longer be edited")
	ErrInvalidStatusTransition = errors.New("invalid document status transition")
	ErrCreditNoteNotPositive   = errors.New("credit note total must be greater than zero")
	ErrCreditNoteReasonMissing = errors.New("credit note reason is required")
	ErrMilestoneNotFound       = errors.New("payment milestone not found")
	ErrMilestoneAlreadyPaid    = errors.New("payment milestone is already paid")
	ErrPaymentExceedsBalance   = errors.New("payment exceeds outstanding balance")
	ErrUploadFailed            = errors.New("file upload to storage failed")
)
