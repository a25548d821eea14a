package cmd

import (
	"fmt"
	"io"
	"strconv"

	"excelPanel/internal/form"
	"excelPanel/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func printRows(w io.Writer, rows []models.Row) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "PRODUCT", "SKU", "EAN", "WAREHOUSE", "STATUS", "PRICE", "STOCK", "VAT", "UPLOAD").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.ProductName,
			r.SKU,
			r.EAN,
			r.Warehouse,
			r.Status,
			decimalOrDash(r.BasePriceWithVat),
			int64OrDash(r.CurrentStock),
			decimalOrDash(r.Vat),
			r.UploadID,
		)
	}
	fmt.Fprintln(w, t.Render())
}

func printPage(w io.Writer, page *models.Page, query models.SearchRequest) {
	printRows(w, page.Content)
	pages := page.TotalPages
	if pages == 0 {
		pages = 1
	}
	fmt.Fprintf(w, "Page %d of %d • %d rows", page.Number+1, pages, page.TotalElements)
	if query.Sort != "" {
		fmt.Fprintf(w, " • sorted by %s %s", query.Sort, query.Direction)
	}
	if d := query.Describe(); d != "" {
		fmt.Fprintf(w, " • %s", d)
	}
	fmt.Fprintln(w)
}

// printRow lists every attribute of one row, labelled like the form.
func printRow(w io.Writer, r *models.Row) {
	in := r.Input()
	values := map[string]string{
		"productName":         in.ProductName,
		"merchantInventoryId": in.MerchantInventoryID,
		"ean":                 in.EAN,
		"aCode":               in.ACode,
		"sku":                 in.SKU,
		"tags":                in.Tags,
		"status":              in.Status,
		"warehouse":           in.Warehouse,
		"l1Category":          in.L1Category,
		"productType":         in.ProductType,
		"basePriceWithVat":    decimalOrDash(in.BasePriceWithVat),
		"currentStock":        int64OrDash(in.CurrentStock),
		"newBasePriceWithVat": decimalOrDash(in.NewBasePriceWithVat),
		"vat":                 decimalOrDash(in.Vat),
		"newVat":              decimalOrDash(in.NewVat),
		"rowNumber":           "-",
	}
	if in.RowNumber != nil {
		values["rowNumber"] = strconv.Itoa(*in.RowNumber)
	}

	t := table.New().Border(lipgloss.HiddenBorder())
	t.Row("ID", strconv.FormatInt(r.ID, 10))
	for _, f := range form.Fields {
		t.Row(f.Label, values[f.Key])
	}
	t.Row("Upload ID", r.UploadID)
	t.Row("Created", r.CreatedAt)
	t.Row("Updated", r.UpdatedAt)
	fmt.Fprintln(w, t.Render())
}

func decimalOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func int64OrDash(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}
