package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/port"
	"tradebook/internal/pricing"
	"tradebook/internal/xlsxexport"
)

// ProfitLine is one invoice or credit note in a profit report. Credit note
// totals are reported as negative contributions.
type ProfitLine struct {
	DocumentID   uuid.UUID `json:"document_id"`
	Number       string    `json:"number"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Materials    float64   `json:"materials"`
	Labour       float64   `json:"labour"`
	Total        float64   `json:"total"`
	IsCreditNote bool      `json:"is_credit_note"`
}

// ProfitReport summarizes invoiced revenue against credits and expenses for a
// period. All totals come from the live pricing pipeline, never CachedTotal.
type ProfitReport struct {
	From          time.Time    `json:"from"`
	To            time.Time    `json:"to"`
	InvoicedTotal float64      `json:"invoiced_total"`
	CreditedTotal float64      `json:"credited_total"`
	ExpensesTotal float64      `json:"expenses_total"`
	Profit        float64      `json:"profit"`
	Lines         []ProfitLine `json:"lines"`
}

// ReportService defines the profit reporting contract.
type ReportService interface {
	Profit(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*ProfitReport, error)
	ProfitXLSX(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]byte, string, error)
}

type reportService struct {
	docRepo     port.DocumentRepository
	expenseRepo port.ExpenseRepository
	settingsSvc SettingsService
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	docRepo port.DocumentRepository,
	expenseRepo port.ExpenseRepository,
	settingsSvc SettingsService,
) ReportService {
	return &reportService{
		docRepo:     docRepo,
		expenseRepo: expenseRepo,
		settingsSvc: settingsSvc,
	}
}

func (s *reportService) Profit(ctx context.Context, accountID uuid.UUID, from, to time.Time) (*ProfitReport, error) {
	docs, err := s.docRepo.ListInvoicedBetween(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	engineSettings := pricing.SettingsFromAccount(settings)

	report := &ProfitReport{From: from, To: to, Lines: make([]ProfitLine, 0, len(docs))}
	for i := range docs {
		doc := &docs[i]
		b := pricing.Totals(doc, engineSettings, doc.Display)

		line := ProfitLine{
			DocumentID:   doc.ID,
			Number:       doc.Number,
			Title:        doc.Title,
			Date:         doc.CreatedAt,
			Materials:    b.MaterialsTotal,
			Labour:       b.LabourTotal,
			Total:        b.GrandTotal,
			IsCreditNote: doc.IsCreditNote,
		}
		if doc.IsCreditNote {
			line.Total = -b.GrandTotal
			report.CreditedTotal += b.GrandTotal
		} else {
			report.InvoicedTotal += b.GrandTotal
		}
		report.Lines = append(report.Lines, line)
	}

	expenses, err := s.expenseRepo.SumBetween(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	report.ExpensesTotal = expenses
	report.Profit = report.InvoicedTotal - report.CreditedTotal - report.ExpensesTotal
	return report, nil
}

func (s *reportService) ProfitXLSX(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]byte, string, error) {
	report, err := s.Profit(ctx, accountID, from, to)
	if err != nil {
		return nil, "", err
	}

	rows := make([]xlsxexport.ProfitRow, 0, len(report.Lines))
	for _, line := range report.Lines {
		rows = append(rows, xlsxexport.ProfitRow{
			Number:     line.Number,
			Title:      line.Title,
			Date:       line.Date,
			Materials:  line.Materials,
			Labour:     line.Labour,
			Total:      line.Total,
			CreditNote: line.IsCreditNote,
		})
	}

	data, err := xlsxexport.ProfitWorkbook(xlsxexport.ProfitSummary{
		From:          report.From,
		To:            report.To,
		InvoicedTotal: report.InvoicedTotal,
		CreditedTotal: report.CreditedTotal,
		ExpensesTotal: report.ExpensesTotal,
		Profit:        report.Profit,
	}, rows)
	if err != nil {
		return nil, "", err
	}
	return data, xlsxexport.ProfitFilename(report.From, report.To), nil
}
