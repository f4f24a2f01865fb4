// Package pdfexport renders documents as customer-facing PDFs.
package pdfexport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tradebook/internal/domain"
	"tradebook/internal/pricing"
)

// RenderInput carries everything the renderer needs. Customer may be nil for
// documents without a billed party.
type RenderInput struct {
	Document    *domain.Document
	Totals      pricing.Breakdown
	AccountName string
	Customer    *domain.Customer
}

const (
	pageWidth   = 190.0
	colQty      = 20.0
	colUnit     = 30.0
	colAmount   = 30.0
	labelWidth  = 140.0
	amountWidth = 50.0
)

// Render produces the PDF bytes for a document. Section line detail follows
// the document's display flags; an overridden section always renders as a
// single price line with no item breakdown.
func Render(input RenderInput) ([]byte, error) {
	doc := input.Document
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s %s", titleFor(doc), doc.Number), false)
	pdf.AddPage()

	writeHeader(pdf, input)

	for i := range doc.Sections {
		writeSection(pdf, &doc.Sections[i], &input.Totals.Sections[i], doc.Display)
	}

	writeTotals(pdf, doc, input.Totals)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func titleFor(doc *domain.Document) string {
	if doc.IsCreditNote {
		return "Credit Note"
	}
	switch doc.DocumentType {
	case domain.DocumentTypeEstimate:
		return "Estimate"
	case domain.DocumentTypeQuotation:
		return "Quotation"
	default:
		return "Invoice"
	}
}

func writeHeader(pdf *gofpdf.Fpdf, input RenderInput) {
	doc := input.Document

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(pageWidth, 10, input.AccountName, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(pageWidth, 8, fmt.Sprintf("%s %s", titleFor(doc), doc.Number), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(pageWidth, 6, doc.Title, "", 1, "L", false, 0, "")
	pdf.CellFormat(pageWidth, 6, "Date: "+doc.CreatedAt.Format("2 January 2006"), "", 1, "L", false, 0, "")
	if doc.DueDate != nil {
		pdf.CellFormat(pageWidth, 6, "Due: "+doc.DueDate.Format("2 January 2006"), "", 1, "L", false, 0, "")
	}
	if doc.IsCreditNote && doc.CreditNoteReason != "" {
		pdf.CellFormat(pageWidth, 6, "Reason: "+doc.CreditNoteReason, "", 1, "L", false, 0, "")
	}

	if c := input.Customer; c != nil {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(pageWidth, 6, "Billed to", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(pageWidth, 5, c.Name, "", 1, "L", false, 0, "")
		if c.Address != "" {
			pdf.CellFormat(pageWidth, 5, c.Address, "", 1, "L", false, 0, "")
		}
		if c.Postcode != "" {
			pdf.CellFormat(pageWidth, 5, c.Postcode, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(6)
}

func writeSection(pdf *gofpdf.Fpdf, sec *domain.Section, b *pricing.SectionBreakdown, display domain.DisplayOptions) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(labelWidth, 7, sec.Name, "B", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(amountWidth, 7, pricing.FormatGBP(b.Price), "B", 1, "R", false, 0, "")

	// Overridden sections show the agreed price only.
	if b.Overridden {
		pdf.Ln(2)
		return
	}

	pdf.SetFont("Arial", "", 9)
	if display.ShowMaterials {
		for i := range sec.Items {
			item := &sec.Items[i]
			if item.IsHeading {
				pdf.SetFont("Arial", "B", 9)
				pdf.CellFormat(pageWidth, 5, item.Name, "", 1, "L", false, 0, "")
				pdf.SetFont("Arial", "", 9)
				continue
			}
			name := item.Name
			if item.Unit != "" {
				name = fmt.Sprintf("%s (%s)", item.Name, item.Unit)
			}
			pdf.CellFormat(pageWidth-colQty-colUnit-colAmount, 5, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(colQty, 5, trimZeros(item.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(colUnit, 5, pricing.FormatGBP(item.UnitPrice), "", 0, "R", false, 0, "")
			pdf.CellFormat(colAmount, 5, pricing.FormatGBP(pricing.LineTotal(item)), "", 1, "R", false, 0, "")
		}
	}
	if display.ShowLabour && b.Labour > 0 {
		pdf.CellFormat(labelWidth, 5, "Labour", "", 0, "L", false, 0, "")
		pdf.CellFormat(amountWidth, 5, pricing.FormatGBP(b.Labour), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}

func writeTotals(pdf *gofpdf.Fpdf, doc *domain.Document, b pricing.Breakdown) {
	pdf.Ln(4)

	line := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(labelWidth, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(amountWidth, 6, amount, "", 1, "R", false, 0, "")
	}

	line("Subtotal", pricing.FormatGBP(b.ClientSubtotal), false)
	if b.DiscountAmount != 0 {
		label := "Discount"
		if doc.Discount.Description != "" {
			label = "Discount (" + doc.Discount.Description + ")"
		}
		line(label, "-"+pricing.FormatGBP(b.DiscountAmount), false)
	}
	if doc.Display.ShowVat && b.TaxAmount != 0 {
		line(fmt.Sprintf("VAT (%s%%)", trimZeros(doc.VatPercent)), pricing.FormatGBP(b.TaxAmount), false)
	}
	if doc.Display.ShowCis && b.CisAmount != 0 {
		line(fmt.Sprintf("CIS withheld (%s%%)", trimZeros(doc.CisPercent)), "-"+pricing.FormatGBP(b.CisAmount), false)
	}
	line("Total", pricing.FormatGBP(b.GrandTotal), true)

	if due := pricing.PartPayment(b.GrandTotal, doc.PartPayment); due > 0 {
		label := doc.PartPayment.Label
		if label == "" {
			label = "Due now"
		}
		line(label, pricing.FormatGBP(due), true)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(pageWidth, 5, "Generated "+time.Now().Format("2 January 2006"), "", 1, "L", false, 0, "")
}

// trimZeros renders a float without trailing zeros for quantities and
// percentages.
func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
