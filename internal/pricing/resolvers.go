package pricing

import (
	"tradebook/internal/domain"
)

// Discount returns the discount amount for a base amount. Percentage
// discounts are base × value/100; fixed discounts are the value verbatim and
// are not clamped to the base, so a fixed discount can drive the
// post-discount amount negative. An unset type means no discount.
func Discount(base float64, dtype domain.DiscountType, value float64) float64 {
	switch dtype {
	case domain.DiscountTypePercentage:
		return base * value / 100
	case domain.DiscountTypeFixed:
		return value
	default:
		return 0
	}
}

// Gates are the two independent switches on a tax/deduction line: the
// account-level enable toggle and the per-document display flag. The amount
// is computed only when both are on.
type Gates struct {
	Enabled bool
	Show    bool
}

// VAT returns the value-added tax on the post-discount amount. The base
// includes markup and excludes the discount: tax on the discounted selling
// price, not on cost.
func VAT(afterDiscount, taxPercent float64, g Gates) float64 {
	if !g.Enabled || !g.Show {
		return 0
	}
	return afterDiscount * taxPercent / 100
}

// CIS returns the Construction Industry Scheme withholding. The base is the
// raw labour total before markup and discount: the statutory basis is
// subcontractor labour only, never materials or markup.
func CIS(labourTotal, cisPercent float64, g Gates) float64 {
	if !g.Enabled || !g.Show {
		return 0
	}
	return labourTotal * cisPercent / 100
}

// PartPayment returns the due-now amount for a document's part-payment
// configuration against its grand total. Disabled or valueless configurations
// yield zero.
func PartPayment(grandTotal float64, cfg domain.PartPaymentConfig) float64 {
	if !cfg.Enabled || cfg.Amount == nil {
		return 0
	}
	switch cfg.Type {
	case domain.PartPaymentTypePercentage:
		return grandTotal * *cfg.Amount / 100
	case domain.PartPaymentTypeFixed:
		return *cfg.Amount
	default:
		return 0
	}
}

// MilestoneAmount returns a milestone's derived amount against the document's
// current total: the fixed amount when set, else percentage of the total.
// Milestone amounts are not validated to sum to the document total; that is a
// caller concern.
func MilestoneAmount(m *domain.PaymentMilestone, documentTotal float64) float64 {
	if m.FixedAmount != nil {
		return *m.FixedAmount
	}
	if m.Percentage != nil {
		return *m.Percentage / 100 * documentTotal
	}
	return 0
}
