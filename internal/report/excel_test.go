package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderExcelRoundTrip(t *testing.T) {
	table := ReportTable{
		Name:  "Payment Report",
		Sheet: "Payments",
		Headers: []Header{
			{Title: "Total Payments", Key: "totalPayments", Width: 20},
			{Title: "Status", Key: "status", Width: 15},
			{Title: "Count", Key: "count", Width: 10},
		},
		Rows: []Row{
			{"totalPayments": 3},
			{"status": "paid", "count": 2},
		},
	}

	out, err := RenderExcel(table)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Payments"}, f.GetSheetList())

	get := func(cell string) string {
		v, err := f.GetCellValue("Payments", cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Total Payments", get("A1"))
	assert.Equal(t, "Status", get("B1"))
	assert.Equal(t, "Count", get("C1"))

	// Summary row: only the total column is populated.
	assert.Equal(t, "3", get("A2"))
	assert.Empty(t, get("B2"))
	assert.Empty(t, get("C2"))

	// Bucket row: blank total, populated status and count.
	assert.Empty(t, get("A3"))
	assert.Equal(t, "paid", get("B3"))
	assert.Equal(t, "2", get("C3"))
}

func TestRenderExcelDefaultsSheetName(t *testing.T) {
	out, err := RenderExcel(ReportTable{
		Headers: []Header{{Title: "Total", Key: "total", Width: 10}},
		Rows:    []Row{{"total": 1}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Report"}, f.GetSheetList())
}
