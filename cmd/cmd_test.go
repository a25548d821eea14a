package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"excelPanel/internal/config"
	"excelPanel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against a backend served by mux.
func runCLI(t *testing.T, mux *http.ServeMux, stdin string, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EXCELPANEL_API_URL", srv.URL)

	listFilters, listRanges, listSearch, listSort, listCSV = nil, nil, "", "", false
	deleteAll, skipConfirmation = false, false

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFilter(t *testing.T) {
	f, err := parseFilter("", []string{"warehouse=BG1", "sku=SK-1"}, []string{"currentStock=10:", "vat=:20,5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"warehouse": "BG1", "sku": "SK-1"}, f.Fields)

	stock := f.Ranges["currentStock"]
	require.NotNil(t, stock.Min)
	assert.Equal(t, "10", stock.Min.String())
	assert.Nil(t, stock.Max)

	vat := f.Ranges["vat"]
	assert.Nil(t, vat.Min)
	assert.Equal(t, "20.5", vat.Max.String())
}

func TestParseFilterErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		ranges []string
		want   string
	}{
		{name: "missing equals", fields: []string{"warehouse"}, want: "expected field=value"},
		{name: "numeric column as text", fields: []string{"vat=20"}, want: "not a text column"},
		{name: "text column as range", ranges: []string{"sku=1:2"}, want: "not a numeric column"},
		{name: "not a number", ranges: []string{"vat=a:2"}, want: "is not a number"},
		{name: "inverted", ranges: []string{"currentStock=9:3"}, want: "min is greater than max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFilter("", tt.fields, tt.ranges)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestListStateMatchesTable(t *testing.T) {
	d := config.Default()
	cfg = &d
	t.Cleanup(func() { cfg = nil })

	listPage, listSize, listSort, listDirection = 3, 0, "currentStock", "desc"
	listSearch, listFilters, listRanges = "mleko", []string{"sku=x"}, nil
	t.Cleanup(func() {
		listPage, listSort, listDirection, listSearch, listFilters = 1, "", "asc", "", nil
	})

	state, err := listState()
	require.NoError(t, err)
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, 20, state.Size)
	assert.Equal(t, models.Desc, state.SortDirection)
	assert.True(t, state.SearchMode)

	listSort = "ean"
	_, err = listState()
	assert.ErrorContains(t, err, "cannot sort by")

	listSort, listPage = "", 0
	_, err = listState()
	assert.ErrorContains(t, err, "pages start at 1")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "product-name", flagName("productName"))
	assert.Equal(t, "merchant-inventory-id", flagName("merchantInventoryId"))
	assert.Equal(t, "l1-category", flagName("l1Category"))
	assert.Equal(t, "ean", flagName("ean"))
}

func TestConfirmAction(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirmAction(strings.NewReader("y\n"), &out, "Go?"))
	assert.True(t, confirmAction(strings.NewReader("YES"), &out, "Go?"))
	assert.False(t, confirmAction(strings.NewReader("\n"), &out, "Go?"))
	assert.False(t, confirmAction(strings.NewReader(""), &out, "Go?"))
	assert.Contains(t, out.String(), "Go? (y/N): ")
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-3", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestListCommandSearchesWithFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/excel/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "BG1", q.Get("warehouse"))
		assert.Equal(t, "10", q.Get("currentStockMin"))
		assert.False(t, q.Has("currentStockMax"))
		assert.Equal(t, "0", q.Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Page{
			Content:       []models.Row{{ID: 7, ProductName: "Kafa", Warehouse: "BG1"}},
			TotalElements: 1,
			TotalPages:    1,
			Size:          20,
		})
	})

	out, err := runCLI(t, mux, "", "list", "--filter", "warehouse=BG1", "--range", "currentStock=10:", "--csv")
	require.NoError(t, err)
	assert.Contains(t, out, "productName")
	assert.Contains(t, out, "Kafa")
}

func TestDeleteAllCancelledWithoutConfirmation(t *testing.T) {
	deletes := 0
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/excel", func(w http.ResponseWriter, r *http.Request) {
		deletes++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"All rows deleted"}`))
	})

	out, err := runCLI(t, mux, "n\n", "delete", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete cancelled")
	assert.Zero(t, deletes)
}

func TestDeleteReportsBackendMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/excel/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Row not found with id: 9"}`))
	})

	_, err := runCLI(t, mux, "", "delete", "9", "--yes")
	require.Error(t, err)
	assert.Equal(t, "Failed to delete row #9: Row not found with id: 9", err.Error())
}
