// Package pricing is the document totals engine. Every function is pure and
// deterministic: documents and settings go in, numbers come out. Amounts are
// raw float64 throughout; rounding to two decimal places happens only at
// formatting time and is never fed back into the pipeline.
package pricing

import (
	"tradebook/internal/domain"
)

// LineTotal returns a line item's extended price, Quantity × UnitPrice.
// Heading rows are visual dividers and never contribute to totals.
func LineTotal(item *domain.LineItem) float64 {
	if item.IsHeading {
		return 0
	}
	return item.Quantity * item.UnitPrice
}

// SectionMaterials sums the extended prices of a section's non-heading items.
func SectionMaterials(sec *domain.Section) float64 {
	var sum float64
	for i := range sec.Items {
		sum += LineTotal(&sec.Items[i])
	}
	return sum
}

// rateResolver yields a labour rate and whether it applies.
type rateResolver func() (float64, bool)

// EffectiveLabourRate resolves the hourly rate for a labour item through the
// strict fallback chain: item rate, then section rate, then document rate,
// then the account default. The chain is an ordered resolver list so the
// precedence stays auditable; item may be nil when resolving a section's flat
// hours.
func EffectiveLabourRate(item *domain.LabourItem, sec *domain.Section, documentRate, defaultRate float64) float64 {
	resolvers := []rateResolver{
		func() (float64, bool) {
			if item != nil && item.Rate != nil {
				return *item.Rate, true
			}
			return 0, false
		},
		func() (float64, bool) {
			if sec != nil && sec.LabourRate != nil {
				return *sec.LabourRate, true
			}
			return 0, false
		},
		func() (float64, bool) {
			return documentRate, documentRate > 0
		},
	}
	for _, resolve := range resolvers {
		if rate, ok := resolve(); ok {
			return rate
		}
	}
	return defaultRate
}

// SectionLabour computes a section's labour cost. Precedence, highest to
// lowest: itemized labour items, then a direct labour cost, then flat hours
// multiplied by the effective rate. A section with none of these has zero
// labour.
func SectionLabour(sec *domain.Section, documentRate, defaultRate float64) float64 {
	if len(sec.LabourItems) > 0 {
		var sum float64
		for i := range sec.LabourItems {
			li := &sec.LabourItems[i]
			sum += li.Hours * EffectiveLabourRate(li, sec, documentRate, defaultRate)
		}
		return sum
	}
	if sec.LabourCost != nil {
		return *sec.LabourCost
	}
	if sec.LabourHours != nil {
		return *sec.LabourHours * EffectiveLabourRate(nil, sec, documentRate, defaultRate)
	}
	return 0
}

// SectionPrice returns the section's contribution to the document total: the
// manual override when present, otherwise materials + labour. A zero override
// is a legitimate zero, not "unset".
func SectionPrice(sec *domain.Section, materials, labour float64) float64 {
	if sec.PriceOverride != nil {
		return *sec.PriceOverride
	}
	return materials + labour
}
