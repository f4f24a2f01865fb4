// Package xlsxexport renders profit reports as Excel workbooks for download.
package xlsxexport

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Profit Report"

// columns defines the report header row.
var columns = []interface{}{
	"Number",
	"Title",
	"Date",
	"Materials",
	"Labour",
	"Total",
	"Credit Note",
}

// ProfitRow is one document line in the exported report. Total is already
// signed: credit notes carry negative totals.
type ProfitRow struct {
	Number     string
	Title      string
	Date       time.Time
	Materials  float64
	Labour     float64
	Total      float64
	CreditNote bool
}

// ProfitSummary holds the period totals written below the document rows.
type ProfitSummary struct {
	From          time.Time
	To            time.Time
	InvoicedTotal float64
	CreditedTotal float64
	ExpensesTotal float64
	Profit        float64
}

// ProfitWorkbook builds the report workbook and returns its serialized bytes.
func ProfitWorkbook(summary ProfitSummary, rows []ProfitRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.Number,
			row.Title,
			row.Date.Format("2006-01-02"),
			row.Materials,
			row.Labour,
			row.Total,
			formatBool(row.CreditNote),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	// Summary block, separated from the rows by a blank line.
	base := len(rows) + 3
	summaryRows := [][]interface{}{
		{"Period", fmt.Sprintf("%s to %s", summary.From.Format("2006-01-02"), summary.To.Format("2006-01-02"))},
		{"Invoiced", summary.InvoicedTotal},
		{"Credited", summary.CreditedTotal},
		{"Expenses", summary.ExpensesTotal},
		{"Profit", summary.Profit},
	}
	for i, values := range summaryRows {
		cell := fmt.Sprintf("A%d", base+i)
		v := values
		if err := f.SetSheetRow(sheetName, cell, &v); err != nil {
			return nil, fmt.Errorf("writing summary row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// ProfitFilename returns the download filename for a profit report period.
// Format: profit_report_{from}_{to}.xlsx with YYYY-MM-DD dates.
func ProfitFilename(from, to time.Time) string {
	return fmt.Sprintf("profit_report_%s_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
}
