package pricing

import (
	"github.com/google/uuid"

	"tradebook/internal/domain"
)

// Settings are the account-level inputs to a totals run, passed explicitly so
// the pipeline stays pure.
type Settings struct {
	EnableVat         bool
	EnableCis         bool
	DefaultLabourRate float64
}

// SettingsFromAccount maps stored account settings to engine settings.
func SettingsFromAccount(s *domain.AccountSettings) Settings {
	return Settings{
		EnableVat:         s.EnableVat,
		EnableCis:         s.EnableCis,
		DefaultLabourRate: s.DefaultLabourRate,
	}
}

// SectionBreakdown is one section's slice of the totals. Computed always
// holds materials + labour even when the section price is overridden, so
// reporting can see through overrides.
type SectionBreakdown struct {
	SectionID  uuid.UUID `json:"section_id"`
	Name       string    `json:"name"`
	Materials  float64   `json:"materials"`
	Labour     float64   `json:"labour"`
	Computed   float64   `json:"computed"`
	Price      float64   `json:"price"`
	Overridden bool      `json:"overridden"`
}

// Breakdown is the totals pipeline output. MaterialsTotal and LabourTotal
// always reflect computed values; SectionsTotal respects section overrides.
type Breakdown struct {
	MaterialsTotal float64            `json:"materials_total"`
	LabourTotal    float64            `json:"labour_total"`
	SectionsTotal  float64            `json:"sections_total"`
	ClientSubtotal float64            `json:"client_subtotal"`
	DiscountAmount float64            `json:"discount_amount"`
	AfterDiscount  float64            `json:"after_discount"`
	TaxAmount      float64            `json:"tax_amount"`
	CisAmount      float64            `json:"cis_amount"`
	GrandTotal     float64            `json:"grand_total"`
	Sections       []SectionBreakdown `json:"sections"`
}

// Totals runs the full pipeline in fixed order: section aggregation, markup,
// discount, VAT, CIS, grand total. Each step consumes the prior step's
// output; the order is never changed. An empty document yields all-zero
// totals.
func Totals(doc *domain.Document, s Settings, display domain.DisplayOptions) Breakdown {
	b := Breakdown{Sections: make([]SectionBreakdown, 0, len(doc.Sections))}

	for i := range doc.Sections {
		sec := &doc.Sections[i]
		materials := SectionMaterials(sec)
		labour := SectionLabour(sec, doc.LabourRate, s.DefaultLabourRate)
		price := SectionPrice(sec, materials, labour)

		b.MaterialsTotal += materials
		b.LabourTotal += labour
		b.SectionsTotal += price
		b.Sections = append(b.Sections, SectionBreakdown{
			SectionID:  sec.ID,
			Name:       sec.Name,
			Materials:  materials,
			Labour:     labour,
			Computed:   materials + labour,
			Price:      price,
			Overridden: sec.PriceOverride != nil,
		})
	}

	b.ClientSubtotal = b.SectionsTotal * (1 + doc.MarkupPercent/100)
	b.DiscountAmount = Discount(b.ClientSubtotal, doc.Discount.Type, doc.Discount.Amount)
	b.AfterDiscount = b.ClientSubtotal - b.DiscountAmount
	b.TaxAmount = VAT(b.AfterDiscount, doc.VatPercent, Gates{Enabled: s.EnableVat, Show: display.ShowVat})
	// CIS withholds against the raw labour total, before markup and discount.
	b.CisAmount = CIS(b.LabourTotal, doc.CisPercent, Gates{Enabled: s.EnableCis, Show: display.ShowCis})
	b.GrandTotal = b.AfterDiscount + b.TaxAmount - b.CisAmount
	return b
}

// GrandTotal is a convenience wrapper for list views that need only the final
// figure, using the document's own display flags.
func GrandTotal(doc *domain.Document, s Settings) float64 {
	return Totals(doc, s, doc.Display).GrandTotal
}
