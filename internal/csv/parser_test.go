package csv

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"excelPanel/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputsSkipsInvalidLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	content := "productName,sku,basePriceWithVat,currentStock\n" +
		"Mleko,ML-1,129.99,10\n" +
		",NO-NAME,1,1\n" +
		"Hleb,HL-2,not-a-price,3\n" +
		"Sir,SR-3,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	inputs, skipped, err := NewParser(path).ParseInputs()
	require.NoError(t, err)

	require.Len(t, inputs, 2)
	assert.Equal(t, "Mleko", inputs[0].ProductName)
	assert.True(t, inputs[0].BasePriceWithVat.Equal(decimal.RequireFromString("129.99")))
	assert.EqualValues(t, 10, *inputs[0].CurrentStock)
	assert.Equal(t, 1, *inputs[0].RowNumber)

	assert.Equal(t, "Sir", inputs[1].ProductName)
	assert.Nil(t, inputs[1].BasePriceWithVat)
	assert.Nil(t, inputs[1].CurrentStock)

	require.Len(t, skipped, 2)
	assert.Equal(t, 3, skipped[0].Line)
	assert.Equal(t, 4, skipped[1].Line)
}

func TestReadInputsRequiresProductNameColumn(t *testing.T) {
	_, _, err := ReadInputs(strings.NewReader("sku\nA\n"))
	assert.Error(t, err)

	_, _, err = ReadInputs(strings.NewReader(""))
	assert.EqualError(t, err, "CSV file is empty")
}

func TestParseInputsMissingFile(t *testing.T) {
	_, _, err := NewParser(filepath.Join(t.TempDir(), "missing.csv")).ParseInputs()
	assert.ErrorContains(t, err, "failed to open CSV file")
}

func TestWriteRows(t *testing.T) {
	price := decimal.RequireFromString("99.5")
	stock := int64(3)
	rows := []models.Row{
		{ID: 1, ProductName: "Kafa", SKU: "KF", BasePriceWithVat: &price, CurrentStock: &stock},
		{ID: 2, ProductName: "Čaj, zeleni"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,merchantInventoryId,productName,"))
	assert.Contains(t, lines[1], "Kafa")
	assert.Contains(t, lines[1], "99.5")
	assert.Contains(t, lines[2], `"Čaj, zeleni"`)
}

func TestWriteRowsEmptyWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "id,"))
}

func TestWrittenRowsReadBackAsInputs(t *testing.T) {
	vat := decimal.NewFromInt(20)
	n := 5
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, []models.Row{{ID: 4, ProductName: "Voda", Vat: &vat, RowNumber: &n}}))

	inputs, skipped, err := ReadInputs(&buf)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Voda", inputs[0].ProductName)
	assert.True(t, inputs[0].Vat.Equal(vat))
	assert.Equal(t, 5, *inputs[0].RowNumber)
}
