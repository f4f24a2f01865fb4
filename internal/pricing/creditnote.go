package pricing

import (
	"math"

	"github.com/google/uuid"

	"tradebook/internal/domain"
)

// CreditAdjustments holds the caller-supplied reductions for a partial
// credit: replacement quantities per line item and replacement flat labour
// hours per section. Absent keys leave the source values untouched.
type CreditAdjustments struct {
	ItemQuantities     map[uuid.UUID]float64 `json:"item_quantities"`
	SectionLabourHours map[uuid.UUID]float64 `json:"section_labour_hours"`
}

// DeriveFullCredit produces a credit note mirroring the source invoice's
// sections verbatim. The note is created with status paid, linked to the
// source invoice, and never carries over share tokens, acceptance timestamps,
// or recurring-invoice linkage. Creation is refused when the derived grand
// total is not strictly positive.
func DeriveFullCredit(inv *domain.Document, reason string, s Settings) (*domain.Document, error) {
	if reason == "" {
		return nil, domain.ErrCreditNoteReasonMissing
	}
	cn := newCreditNote(inv, reason)
	if GrandTotal(cn, s) <= 0 {
		return nil, domain.ErrCreditNoteNotPositive
	}
	return cn, nil
}

// DerivePartialCredit produces a credit note with adjusted quantities and
// labour hours. Each adjusted line's extended price is recomputed as
// max(0, quantity) × unit price; a section labour adjustment replaces the
// section's labour paths with the given flat hours. The engine does not stop
// callers raising quantities, though the surrounding application never does.
func DerivePartialCredit(inv *domain.Document, adj CreditAdjustments, reason string, s Settings) (*domain.Document, error) {
	if reason == "" {
		return nil, domain.ErrCreditNoteReasonMissing
	}
	cn := newCreditNote(inv, reason)

	for si := range cn.Sections {
		sec := &cn.Sections[si]
		for ii := range sec.Items {
			item := &sec.Items[ii]
			q, ok := adj.ItemQuantities[item.ID]
			if !ok {
				continue
			}
			item.Quantity = math.Max(0, q)
			item.Total = item.Quantity * item.UnitPrice
		}
		if h, ok := adj.SectionLabourHours[sec.ID]; ok {
			hours := math.Max(0, h)
			sec.LabourItems = nil
			sec.LabourCost = nil
			sec.LabourHours = &hours
		}
	}

	if GrandTotal(cn, s) <= 0 {
		return nil, domain.ErrCreditNoteNotPositive
	}
	return cn, nil
}

// newCreditNote copies the invoice into a fresh credit note. Sections are
// deep-copied so adjustments never alias the source invoice's data.
func newCreditNote(inv *domain.Document, reason string) *domain.Document {
	cn := *inv
	cn.ID = uuid.New()
	cn.Number = ""
	cn.Sections = cloneSections(inv.Sections)
	cn.Status = domain.DocumentStatusPaid
	cn.IsCreditNote = true
	originID := inv.ID
	cn.OriginalInvoiceID = &originID
	cn.CreditNoteReason = reason
	cn.ShareToken = ""
	cn.AcceptedAt = nil
	cn.RecurringInvoiceID = nil
	cn.DueDate = nil
	cn.PaymentDate = nil
	cn.AmountPaid = nil
	cn.PaymentMethod = nil
	cn.CachedTotal = nil
	return &cn
}

func cloneSections(src domain.SectionList) domain.SectionList {
	out := make(domain.SectionList, len(src))
	for i := range src {
		out[i] = cloneSection(&src[i])
	}
	return out
}

func cloneSection(sec *domain.Section) domain.Section {
	c := *sec
	c.Items = append([]domain.LineItem(nil), sec.Items...)
	if sec.LabourItems != nil {
		c.LabourItems = make([]domain.LabourItem, len(sec.LabourItems))
		for i := range sec.LabourItems {
			c.LabourItems[i] = sec.LabourItems[i]
			c.LabourItems[i].Rate = cloneFloat(sec.LabourItems[i].Rate)
		}
	}
	c.LabourHours = cloneFloat(sec.LabourHours)
	c.LabourCost = cloneFloat(sec.LabourCost)
	c.LabourRate = cloneFloat(sec.LabourRate)
	c.PriceOverride = cloneFloat(sec.PriceOverride)
	return c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
