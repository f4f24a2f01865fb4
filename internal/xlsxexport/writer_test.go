package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestProfitWorkbook(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	summary := ProfitSummary{
		From:          from,
		To:            to,
		InvoicedTotal: 5000,
		CreditedTotal: 250,
		ExpensesTotal: 1200,
		Profit:        3550,
	}
	rows := []ProfitRow{
		{Number: "INV-0001", Title: "Bathroom refit", Date: from, Materials: 1500, Labour: 2000, Total: 4200},
		{Number: "CN-0001", Title: "Bathroom refit", Date: to, Total: -250, CreditNote: true},
	}

	b, err := ProfitWorkbook(summary, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Profit Report"}, f.GetSheetList())

	header, err := f.GetCellValue("Profit Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Number", header)

	number, _ := f.GetCellValue("Profit Report", "A2")
	assert.Equal(t, "INV-0001", number)
	creditFlag, _ := f.GetCellValue("Profit Report", "G3")
	assert.Equal(t, "Yes", creditFlag)

	// Summary block starts one blank row after the last document row.
	periodLabel, _ := f.GetCellValue("Profit Report", "A5")
	assert.Equal(t, "Period", periodLabel)
	period, _ := f.GetCellValue("Profit Report", "B5")
	assert.Equal(t, "2026-01-01 to 2026-03-31", period)
	profitLabel, _ := f.GetCellValue("Profit Report", "A9")
	assert.Equal(t, "Profit", profitLabel)
}

func TestProfitWorkbook_EmptyRows(t *testing.T) {
	b, err := ProfitWorkbook(ProfitSummary{}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	label, _ := f.GetCellValue("Profit Report", "A3")
	assert.Equal(t, "Period", label)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces become underscores", "my report 2026", "my_report_2026"},
		{"special chars collapse", "a/b\\c:d*e", "a_b_c_d_e"},
		{"consecutive underscores collapse", "a  -  b", "a_-_b"},
		{"leading and trailing trimmed", "  report  ", "report"},
		{"hyphens preserved", "profit-report", "profit-report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_TruncatesLongNames(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "abcdefghij"
	}
	assert.Len(t, SanitizeFilename(long), 100)
}

func TestProfitFilename(t *testing.T) {
	from := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	to := time.Date(2027, 4, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "profit_report_2026-04-06_2027-04-05.xlsx", ProfitFilename(from, to))
}
