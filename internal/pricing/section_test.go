package pricing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tradebook/internal/domain"
	"tradebook/internal/pricing"
)

func fptr(v float64) *float64 { return &v }

func TestLineTotal(t *testing.T) {
	t.Run("quantity_times_unit_price", func(t *testing.T) {
		item := domain.LineItem{Quantity: 3, UnitPrice: 10}
		assert.InDelta(t, 30.0, pricing.LineTotal(&item), 1e-9)
	})

	t.Run("heading_excluded", func(t *testing.T) {
		item := domain.LineItem{Quantity: 3, UnitPrice: 10, IsHeading: true}
		assert.Zero(t, pricing.LineTotal(&item))
	})

	t.Run("zero_quantity", func(t *testing.T) {
		item := domain.LineItem{Quantity: 0, UnitPrice: 99.5}
		assert.Zero(t, pricing.LineTotal(&item))
	})
}

func TestSectionMaterials(t *testing.T) {
	t.Run("sums_non_heading_items", func(t *testing.T) {
		sec := domain.Section{Items: []domain.LineItem{
			{Quantity: 3, UnitPrice: 10},
			{Name: "Second fix", IsHeading: true, Quantity: 1, UnitPrice: 500},
			{Quantity: 1, UnitPrice: 50},
		}}
		assert.InDelta(t, 80.0, pricing.SectionMaterials(&sec), 1e-9)
	})

	t.Run("empty_section", func(t *testing.T) {
		assert.Zero(t, pricing.SectionMaterials(&domain.Section{}))
	})
}

func TestEffectiveLabourRate(t *testing.T) {
	sec := domain.Section{LabourRate: fptr(45)}
	item := domain.LabourItem{Hours: 1, Rate: fptr(60)}

	t.Run("item_rate_wins", func(t *testing.T) {
		assert.InDelta(t, 60.0, pricing.EffectiveLabourRate(&item, &sec, 40, 35), 1e-9)
	})

	t.Run("section_rate_next", func(t *testing.T) {
		noRate := domain.LabourItem{Hours: 1}
		assert.InDelta(t, 45.0, pricing.EffectiveLabourRate(&noRate, &sec, 40, 35), 1e-9)
	})

	t.Run("document_rate_next", func(t *testing.T) {
		assert.InDelta(t, 40.0, pricing.EffectiveLabourRate(nil, &domain.Section{}, 40, 35), 1e-9)
	})

	t.Run("account_default_last", func(t *testing.T) {
		assert.InDelta(t, 35.0, pricing.EffectiveLabourRate(nil, &domain.Section{}, 0, 35), 1e-9)
	})

	t.Run("zero_item_rate_is_a_real_rate", func(t *testing.T) {
		free := domain.LabourItem{Hours: 1, Rate: fptr(0)}
		assert.Zero(t, pricing.EffectiveLabourRate(&free, &sec, 40, 35))
	})
}

func TestSectionLabour(t *testing.T) {
	t.Run("itemized_labour_wins", func(t *testing.T) {
		sec := domain.Section{
			LabourItems: []domain.LabourItem{
				{Description: "First fix", Hours: 2, Rate: fptr(50)},
				{Description: "Second fix", Hours: 3},
			},
			LabourCost:  fptr(999),
			LabourHours: fptr(999),
		}
		// 2×50 + 3×40 (document rate)
		assert.InDelta(t, 220.0, pricing.SectionLabour(&sec, 40, 35), 1e-9)
	})

	t.Run("direct_cost_beats_flat_hours", func(t *testing.T) {
		sec := domain.Section{LabourCost: fptr(150), LabourHours: fptr(10)}
		assert.InDelta(t, 150.0, pricing.SectionLabour(&sec, 40, 35), 1e-9)
	})

	t.Run("flat_hours_times_effective_rate", func(t *testing.T) {
		sec := domain.Section{LabourHours: fptr(2)}
		assert.InDelta(t, 80.0, pricing.SectionLabour(&sec, 40, 35), 1e-9)
	})

	t.Run("flat_hours_use_section_rate_override", func(t *testing.T) {
		sec := domain.Section{LabourHours: fptr(2), LabourRate: fptr(55)}
		assert.InDelta(t, 110.0, pricing.SectionLabour(&sec, 40, 35), 1e-9)
	})

	t.Run("no_labour_paths", func(t *testing.T) {
		assert.Zero(t, pricing.SectionLabour(&domain.Section{}, 40, 35))
	})
}

func TestSectionPrice(t *testing.T) {
	t.Run("computed_when_no_override", func(t *testing.T) {
		sec := domain.Section{}
		assert.InDelta(t, 160.0, pricing.SectionPrice(&sec, 80, 80), 1e-9)
	})

	t.Run("override_dominates", func(t *testing.T) {
		sec := domain.Section{PriceOverride: fptr(500)}
		assert.InDelta(t, 500.0, pricing.SectionPrice(&sec, 80, 80), 1e-9)
	})

	t.Run("zero_override_is_a_legitimate_zero", func(t *testing.T) {
		sec := domain.Section{PriceOverride: fptr(0)}
		assert.Zero(t, pricing.SectionPrice(&sec, 80, 80))
	})
}

// Shared fixture used by totals and credit-note tests: one section with
// materials £80 (3×£10 + 1×£50) and labour £80 (2h at the £40 document rate).
func fixtureDocument() *domain.Document {
	return &domain.Document{
		ID:           uuid.New(),
		Number:       "INV-0042",
		DocumentType: domain.DocumentTypeInvoice,
		Status:       domain.DocumentStatusSent,
		LabourRate:   40,
		Sections: domain.SectionList{
			{
				ID:   uuid.New(),
				Name: "Kitchen Rewire",
				Items: []domain.LineItem{
					{ID: uuid.New(), Name: "Cable", Quantity: 3, UnitPrice: 10},
					{ID: uuid.New(), Name: "Consumer unit", Quantity: 1, UnitPrice: 50},
				},
				LabourHours: fptr(2),
			},
		},
		MarkupPercent: 10,
		VatPercent:    20,
		CisPercent:    20,
		Display:       domain.DefaultDisplayOptions(),
	}
}
