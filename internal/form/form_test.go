package form

import (
	"testing"

	"excelPanel/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutRowIsCreateMode(t *testing.T) {
	f := New(nil)
	assert.Equal(t, ModeCreate, f.Mode())
	assert.Zero(t, f.ID())
	assert.Equal(t, "New row", f.Title())
	assert.Empty(t, f.Value("productName"))
}

func TestNewWithRowPrefillsEditMode(t *testing.T) {
	price := decimal.RequireFromString("149.90")
	stock := int64(12)
	rowNumber := 4
	f := New(&models.Row{
		ID:               42,
		ProductName:      "Jogurt",
		SKU:              "JG-1",
		BasePriceWithVat: &price,
		CurrentStock:     &stock,
		RowNumber:        &rowNumber,
		UploadID:         "batch-1",
	})

	assert.Equal(t, ModeEdit, f.Mode())
	assert.EqualValues(t, 42, f.ID())
	assert.Equal(t, "Edit row #42", f.Title())
	assert.Equal(t, "Jogurt", f.Value("productName"))
	assert.Equal(t, "149.9", f.Value("basePriceWithVat"))
	assert.Equal(t, "12", f.Value("currentStock"))
	assert.Equal(t, "4", f.Value("rowNumber"))
	assert.Empty(t, f.Value("vat"))
}

func TestMissingProductNameFailsValidation(t *testing.T) {
	f := New(nil)
	f.Set("productName", "   ")
	f.Set("sku", "X")

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "productName")

	_, err := f.Input()
	require.Error(t, err)
	var fieldErrs Errors
	require.ErrorAs(t, err, &fieldErrs)
}

func TestEmptyNumericsAreUnset(t *testing.T) {
	f := New(nil)
	f.Set("productName", "Hleb")
	f.Set("vat", "")
	f.Set("currentStock", " ")

	in, err := f.Input()
	require.NoError(t, err)
	assert.Nil(t, in.Vat)
	assert.Nil(t, in.CurrentStock)
	assert.Nil(t, in.BasePriceWithVat)
	require.NotNil(t, in.RowNumber)
	assert.Equal(t, DefaultRowNumber, *in.RowNumber)
}

func TestNumericParsing(t *testing.T) {
	f := New(nil)
	f.Set("productName", "Sir")
	f.Set("basePriceWithVat", "1299,50")
	f.Set("vat", "20")
	f.Set("currentStock", "7")
	f.Set("rowNumber", "3")

	in, err := f.Input()
	require.NoError(t, err)
	assert.True(t, in.BasePriceWithVat.Equal(decimal.RequireFromString("1299.50")))
	assert.True(t, in.Vat.Equal(decimal.NewFromInt(20)))
	assert.EqualValues(t, 7, *in.CurrentStock)
	assert.Equal(t, 3, *in.RowNumber)
}

func TestNonNumericValuesAreFieldErrors(t *testing.T) {
	f := New(nil)
	f.Set("productName", "Sir")
	f.Set("vat", "twenty")
	f.Set("currentStock", "1.5")

	errs := f.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs["vat"], "not a number")
	assert.Contains(t, errs["currentStock"], "not a whole number")
	assert.Equal(t, `currentStock: "1.5" is not a whole number; vat: "twenty" is not a number`, errs.Error())
}

func TestValidateAndNormalizeInput(t *testing.T) {
	assert.Error(t, ValidateInput(models.RowInput{SKU: "only-sku"}))
	assert.NoError(t, ValidateInput(models.RowInput{ProductName: "Kafa"}))

	in := Normalize(models.RowInput{ProductName: "  Kafa "})
	assert.Equal(t, "Kafa", in.ProductName)
	require.NotNil(t, in.RowNumber)
	assert.Equal(t, 1, *in.RowNumber)
}
