package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"excelPanel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCheckGatesOnExtension(t *testing.T) {
	for _, name := range []string{"a.xlsx", "b.xls", "C.XLSX", "dir/d.Xls"} {
		assert.NoError(t, Check(name), name)
	}
	for _, name := range []string{"a.csv", "b.xlsm", "noext", "x.xlsx.txt"} {
		err := Check(name)
		assert.ErrorIs(t, err, ErrUnsupportedFile, name)
	}
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestInspectReadsHeadersAndRowCount(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"productName", "sku", "currentStock"},
		{"Mleko", "ML-1", 10},
		{"Hleb", "HL-2", 4},
	})

	p, err := Inspect(path)
	require.NoError(t, err)
	assert.True(t, p.Parsed)
	assert.Equal(t, "Sheet1", p.Sheet)
	assert.Equal(t, []string{"productName", "sku", "currentStock"}, p.Headers)
	assert.Equal(t, 2, p.Rows)
	assert.Positive(t, p.Size)
}

func TestInspectLegacyXLSOnlySizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.xls")
	require.NoError(t, os.WriteFile(path, []byte("legacy"), 0o644))

	p, err := Inspect(path)
	require.NoError(t, err)
	assert.False(t, p.Parsed)
	assert.EqualValues(t, 6, p.Size)
	assert.Empty(t, p.Headers)
}

func TestInspectRejectsWrongExtension(t *testing.T) {
	_, err := Inspect("rows.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) UploadFile(_ context.Context, path string) (*models.UploadResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.UploadResult{UploadID: "u-1", TotalRows: 3, SavedRows: 3}, nil
}

func TestSubmitNeverCallsBackendForRejectedFiles(t *testing.T) {
	up := &fakeUploader{}
	_, err := Submit(context.Background(), up, "notes.txt", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.Zero(t, up.calls)
}

func TestSubmit(t *testing.T) {
	up := &fakeUploader{}
	res, err := Submit(context.Background(), up, "rows.xlsx", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, "Saved 3 of 3 rows (upload u-1)", Summary(res))

	up.err = errors.New("boom")
	_, err = Submit(context.Background(), up, "rows.xlsx", nil)
	assert.EqualError(t, err, "boom")
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("Confirm")
	require.NoError(t, err)
	assert.Equal(t, Confirm, v)

	v, err = ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, AutoUpload, v)

	_, err = ParseVariant("later")
	assert.Error(t, err)
}

func TestCheckSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.xlsx")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))

	assert.NoError(t, CheckSize(path, 0))
	assert.NoError(t, CheckSize(path, 4096))
	err := CheckSize(path, 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload limit")
}
