package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradebook/internal/domain"
	"tradebook/internal/pricing"
)

func TestDiscount(t *testing.T) {
	t.Run("none_set_returns_zero", func(t *testing.T) {
		assert.Zero(t, pricing.Discount(176, "", 0))
		assert.Zero(t, pricing.Discount(176, "", 50))
	})

	t.Run("percentage", func(t *testing.T) {
		assert.InDelta(t, 17.6, pricing.Discount(176, domain.DiscountTypePercentage, 10), 1e-9)
	})

	t.Run("fixed_verbatim", func(t *testing.T) {
		assert.InDelta(t, 20.0, pricing.Discount(176, domain.DiscountTypeFixed, 20), 1e-9)
	})

	// Fixed discounts are not clamped; downstream callers must not assume a
	// non-negative post-discount amount.
	t.Run("fixed_may_exceed_base", func(t *testing.T) {
		d := pricing.Discount(100, domain.DiscountTypeFixed, 150)
		assert.InDelta(t, 150.0, d, 1e-9)
		assert.Less(t, 100.0-d, 0.0)
	})
}

func TestVAT(t *testing.T) {
	on := pricing.Gates{Enabled: true, Show: true}

	t.Run("both_gates_on", func(t *testing.T) {
		assert.InDelta(t, 35.2, pricing.VAT(176, 20, on), 1e-9)
	})

	t.Run("zero_when_disabled", func(t *testing.T) {
		assert.Zero(t, pricing.VAT(176, 20, pricing.Gates{Enabled: false, Show: true}))
	})

	t.Run("zero_when_hidden", func(t *testing.T) {
		assert.Zero(t, pricing.VAT(176, 20, pricing.Gates{Enabled: true, Show: false}))
	})

	t.Run("negative_base_taxes_negative", func(t *testing.T) {
		assert.InDelta(t, -4.0, pricing.VAT(-20, 20, on), 1e-9)
	})
}

func TestCIS(t *testing.T) {
	on := pricing.Gates{Enabled: true, Show: true}

	t.Run("labour_times_percent", func(t *testing.T) {
		assert.InDelta(t, 16.0, pricing.CIS(80, 20, on), 1e-9)
	})

	t.Run("gated_like_vat", func(t *testing.T) {
		assert.Zero(t, pricing.CIS(80, 20, pricing.Gates{Enabled: false, Show: true}))
		assert.Zero(t, pricing.CIS(80, 20, pricing.Gates{Enabled: true, Show: false}))
	})
}

func TestPartPayment(t *testing.T) {
	t.Run("disabled_yields_zero", func(t *testing.T) {
		cfg := domain.PartPaymentConfig{Enabled: false, Type: domain.PartPaymentTypePercentage, Amount: fptr(50)}
		assert.Zero(t, pricing.PartPayment(200, cfg))
	})

	t.Run("no_value_yields_zero", func(t *testing.T) {
		cfg := domain.PartPaymentConfig{Enabled: true, Type: domain.PartPaymentTypePercentage}
		assert.Zero(t, pricing.PartPayment(200, cfg))
	})

	t.Run("fifty_percent_of_200_is_100", func(t *testing.T) {
		cfg := domain.PartPaymentConfig{Enabled: true, Type: domain.PartPaymentTypePercentage, Amount: fptr(50), Label: "Deposit"}
		assert.InDelta(t, 100.0, pricing.PartPayment(200, cfg), 1e-9)
	})

	t.Run("fixed", func(t *testing.T) {
		cfg := domain.PartPaymentConfig{Enabled: true, Type: domain.PartPaymentTypeFixed, Amount: fptr(75)}
		assert.InDelta(t, 75.0, pricing.PartPayment(200, cfg), 1e-9)
	})
}

func TestMilestoneAmount(t *testing.T) {
	t.Run("fixed_amount_wins", func(t *testing.T) {
		m := domain.PaymentMilestone{FixedAmount: fptr(250), Percentage: fptr(50)}
		assert.InDelta(t, 250.0, pricing.MilestoneAmount(&m, 1000), 1e-9)
	})

	t.Run("percentage_of_current_total", func(t *testing.T) {
		m := domain.PaymentMilestone{Percentage: fptr(25)}
		assert.InDelta(t, 250.0, pricing.MilestoneAmount(&m, 1000), 1e-9)
		// amount tracks the current total, not a snapshot
		assert.InDelta(t, 300.0, pricing.MilestoneAmount(&m, 1200), 1e-9)
	})

	t.Run("neither_set_yields_zero", func(t *testing.T) {
		m := domain.PaymentMilestone{Label: "Final"}
		assert.Zero(t, pricing.MilestoneAmount(&m, 1000))
	})

	// Over-allocation is deliberate caller territory: three 50% milestones
	// simply each derive half the total.
	t.Run("sums_not_enforced", func(t *testing.T) {
		m := domain.PaymentMilestone{Percentage: fptr(50)}
		total := 0.0
		for i := 0; i < 3; i++ {
			total += pricing.MilestoneAmount(&m, 200)
		}
		assert.InDelta(t, 300.0, total, 1e-9)
	})
}

func TestFormatGBP(t *testing.T) {
	assert.Equal(t, "£211.20", pricing.FormatGBP(211.20000000000003))
	assert.Equal(t, "£0.00", pricing.FormatGBP(0))
	assert.Equal(t, "£-12.50", pricing.FormatGBP(-12.5))
}
