package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/domain"
	"tradebook/internal/pricing"
)

func vatOnlySettings() pricing.Settings {
	return pricing.Settings{EnableVat: true, EnableCis: false, DefaultLabourRate: 35}
}

func TestTotals_EmptyDocument(t *testing.T) {
	doc := &domain.Document{Display: domain.DefaultDisplayOptions()}
	b := pricing.Totals(doc, vatOnlySettings(), doc.Display)

	assert.Zero(t, b.MaterialsTotal)
	assert.Zero(t, b.LabourTotal)
	assert.Zero(t, b.SectionsTotal)
	assert.Zero(t, b.GrandTotal)
	assert.Empty(t, b.Sections)
}

// Scenario: materials £80, labour £80, markup 10% → £176, VAT 20% on £176,
// CIS disabled → grand total £211.20.
func TestTotals_VATScenario(t *testing.T) {
	doc := fixtureDocument()
	b := pricing.Totals(doc, vatOnlySettings(), doc.Display)

	assert.InDelta(t, 80.0, b.MaterialsTotal, 1e-9)
	assert.InDelta(t, 80.0, b.LabourTotal, 1e-9)
	assert.InDelta(t, 160.0, b.SectionsTotal, 1e-9)
	assert.InDelta(t, 176.0, b.ClientSubtotal, 1e-9)
	assert.Zero(t, b.DiscountAmount)
	assert.InDelta(t, 176.0, b.AfterDiscount, 1e-9)
	assert.InDelta(t, 35.20, b.TaxAmount, 1e-9)
	assert.Zero(t, b.CisAmount)
	assert.InDelta(t, 211.20, b.GrandTotal, 1e-9)
}

// Same section with CIS enabled at 20%: withholding is £80×0.20 = £16 against
// raw labour, so grand total = £176 + £35.20 − £16 = £195.20.
func TestTotals_CISScenario(t *testing.T) {
	doc := fixtureDocument()
	s := pricing.Settings{EnableVat: true, EnableCis: true, DefaultLabourRate: 35}
	b := pricing.Totals(doc, s, doc.Display)

	assert.InDelta(t, 16.0, b.CisAmount, 1e-9)
	assert.InDelta(t, 195.20, b.GrandTotal, 1e-9)
}

// Fixed £20 discount applies before tax: £176 − £20 = £156, VAT 20% = £31.20,
// grand total £187.20.
func TestTotals_FixedDiscountScenario(t *testing.T) {
	doc := fixtureDocument()
	doc.Discount = domain.Discount{Type: domain.DiscountTypeFixed, Amount: 20}
	b := pricing.Totals(doc, vatOnlySettings(), doc.Display)

	assert.InDelta(t, 20.0, b.DiscountAmount, 1e-9)
	assert.InDelta(t, 156.0, b.AfterDiscount, 1e-9)
	assert.InDelta(t, 31.20, b.TaxAmount, 1e-9)
	assert.InDelta(t, 187.20, b.GrandTotal, 1e-9)
}

func TestTotals_SectionOverride(t *testing.T) {
	doc := fixtureDocument()
	doc.Sections[0].PriceOverride = fptr(100)
	b := pricing.Totals(doc, vatOnlySettings(), doc.Display)

	t.Run("override_dominates_sections_total", func(t *testing.T) {
		assert.InDelta(t, 100.0, b.SectionsTotal, 1e-9)
		require.Len(t, b.Sections, 1)
		assert.True(t, b.Sections[0].Overridden)
		assert.InDelta(t, 100.0, b.Sections[0].Price, 1e-9)
	})

	// Reporting still sees computed values under the override.
	t.Run("computed_values_preserved", func(t *testing.T) {
		assert.InDelta(t, 80.0, b.MaterialsTotal, 1e-9)
		assert.InDelta(t, 80.0, b.LabourTotal, 1e-9)
		assert.InDelta(t, 160.0, b.Sections[0].Computed, 1e-9)
	})
}

// CIS is computed on the labour total only: changing materials while holding
// labour fixed must not move the withholding.
func TestTotals_CISIgnoresMaterials(t *testing.T) {
	s := pricing.Settings{EnableVat: true, EnableCis: true, DefaultLabourRate: 35}

	doc := fixtureDocument()
	before := pricing.Totals(doc, s, doc.Display).CisAmount

	doc.Sections[0].Items = append(doc.Sections[0].Items, domain.LineItem{Quantity: 10, UnitPrice: 100})
	after := pricing.Totals(doc, s, doc.Display).CisAmount

	assert.Equal(t, before, after)
	assert.InDelta(t, 16.0, after, 1e-9)
}

func TestTotals_VATGates(t *testing.T) {
	t.Run("account_toggle_off", func(t *testing.T) {
		doc := fixtureDocument()
		b := pricing.Totals(doc, pricing.Settings{EnableVat: false, DefaultLabourRate: 35}, doc.Display)
		assert.Zero(t, b.TaxAmount)
		assert.InDelta(t, 176.0, b.GrandTotal, 1e-9)
	})

	t.Run("display_flag_off", func(t *testing.T) {
		doc := fixtureDocument()
		doc.Display.ShowVat = false
		b := pricing.Totals(doc, vatOnlySettings(), doc.Display)
		assert.Zero(t, b.TaxAmount)
	})
}

// An oversized fixed discount is preserved, not clamped: the post-discount
// amount and grand total go negative.
func TestTotals_FixedDiscountExceedingSubtotal(t *testing.T) {
	doc := fixtureDocument()
	doc.Discount = domain.Discount{Type: domain.DiscountTypeFixed, Amount: 500}
	b := pricing.Totals(doc, vatOnlySettings(), doc.Display)

	assert.InDelta(t, -324.0, b.AfterDiscount, 1e-9)
	assert.Less(t, b.GrandTotal, 0.0)
}

func TestTotals_Idempotent(t *testing.T) {
	doc := fixtureDocument()
	s := pricing.Settings{EnableVat: true, EnableCis: true, DefaultLabourRate: 35}

	first := pricing.Totals(doc, s, doc.Display)
	second := pricing.Totals(doc, s, doc.Display)
	assert.Equal(t, first, second)
}

func TestGrandTotal_MatchesPipeline(t *testing.T) {
	doc := fixtureDocument()
	s := vatOnlySettings()
	assert.Equal(t, pricing.Totals(doc, s, doc.Display).GrandTotal, pricing.GrandTotal(doc, s))
}

func TestTotals_MultipleSections(t *testing.T) {
	doc := fixtureDocument()
	doc.Sections = append(doc.Sections, domain.Section{
		Name: "Bathroom",
		Items: []domain.LineItem{
			{Quantity: 2, UnitPrice: 25},
		},
		LabourItems: []domain.LabourItem{
			{Description: "Plumbing", Hours: 1, Rate: fptr(50)},
		},
	})
	b := pricing.Totals(doc, vatOnlySettings(), doc.Display)

	assert.InDelta(t, 130.0, b.MaterialsTotal, 1e-9) // 80 + 50
	assert.InDelta(t, 130.0, b.LabourTotal, 1e-9)    // 80 + 50
	assert.InDelta(t, 260.0, b.SectionsTotal, 1e-9)
	require.Len(t, b.Sections, 2)
	for _, sb := range b.Sections {
		assert.InDelta(t, sb.Materials+sb.Labour, sb.Computed, 1e-9)
		if !sb.Overridden {
			assert.Equal(t, sb.Computed, sb.Price)
		}
	}
}
