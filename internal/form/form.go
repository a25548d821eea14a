// Package form holds the values behind the create and edit row dialogs.
//
// A Form is opened either empty (create) or pre-filled from an existing Row
// (edit). Values are kept as the strings the user typed; conversion to a
// models.RowInput happens only after Validate passes, so an invalid form
// never produces a request.
package form

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"excelPanel/internal/models"

	"github.com/shopspring/decimal"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

type Kind int

const (
	Text Kind = iota
	Decimal
	Integer
)

// Field describes one input of the dialog.
type Field struct {
	Key      string
	Label    string
	Kind     Kind
	Required bool
}

// Fields lists the dialog inputs in display order.
var Fields = []Field{
	{Key: "productName", Label: "Product name", Required: true},
	{Key: "merchantInventoryId", Label: "Merchant inventory ID"},
	{Key: "ean", Label: "EAN"},
	{Key: "aCode", Label: "A-code"},
	{Key: "sku", Label: "SKU"},
	{Key: "tags", Label: "Tags"},
	{Key: "status", Label: "Status"},
	{Key: "warehouse", Label: "Warehouse"},
	{Key: "l1Category", Label: "L1 category"},
	{Key: "productType", Label: "Product type"},
	{Key: "basePriceWithVat", Label: "Base price (VAT incl.)", Kind: Decimal},
	{Key: "currentStock", Label: "Current stock", Kind: Integer},
	{Key: "newBasePriceWithVat", Label: "New base price (VAT incl.)", Kind: Decimal},
	{Key: "vat", Label: "VAT", Kind: Decimal},
	{Key: "newVat", Label: "New VAT", Kind: Decimal},
	{Key: "rowNumber", Label: "Row number", Kind: Integer},
}

// DefaultRowNumber is used when the row number input is left empty.
const DefaultRowNumber = 1

// ErrRequired is wrapped by field errors for missing required values.
var ErrRequired = errors.New("is required")

// Errors maps a field key to its validation message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

type Form struct {
	mode   Mode
	id     int64
	values map[string]string
}

// New opens a create form when row is nil and an edit form for row otherwise.
func New(row *models.Row) *Form {
	f := &Form{mode: ModeCreate, values: make(map[string]string, len(Fields))}
	if row == nil {
		return f
	}
	f.mode = ModeEdit
	f.id = row.ID
	for k, v := range valuesOf(row.Input()) {
		f.values[k] = v
	}
	return f
}

func (f *Form) Mode() Mode { return f.mode }

// ID is the row being edited; zero in create mode.
func (f *Form) ID() int64 { return f.id }

func (f *Form) Title() string {
	if f.mode == ModeEdit {
		return fmt.Sprintf("Edit row #%d", f.id)
	}
	return "New row"
}

func (f *Form) Value(key string) string { return f.values[key] }

func (f *Form) Set(key, value string) {
	f.values[key] = value
}

// Validate reports every field error at once, or nil.
func (f *Form) Validate() Errors {
	_, errs := f.build()
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Input converts the form into a request payload. It fails with Errors when
// the form does not validate.
func (f *Form) Input() (models.RowInput, error) {
	in, errs := f.build()
	if len(errs) > 0 {
		return models.RowInput{}, errs
	}
	return in, nil
}

func (f *Form) build() (models.RowInput, Errors) {
	errs := Errors{}
	text := func(key string) string { return strings.TrimSpace(f.values[key]) }

	in := models.RowInput{
		ProductName:         text("productName"),
		MerchantInventoryID: text("merchantInventoryId"),
		EAN:                 text("ean"),
		ACode:               text("aCode"),
		SKU:                 text("sku"),
		Tags:                text("tags"),
		Status:              text("status"),
		Warehouse:           text("warehouse"),
		L1Category:          text("l1Category"),
		ProductType:         text("productType"),
	}
	if in.ProductName == "" {
		errs["productName"] = ErrRequired.Error()
	}

	dec := func(key string) *decimal.Decimal {
		d, err := ParseDecimal(f.values[key])
		if err != nil {
			errs[key] = err.Error()
		}
		return d
	}
	in.BasePriceWithVat = dec("basePriceWithVat")
	in.NewBasePriceWithVat = dec("newBasePriceWithVat")
	in.Vat = dec("vat")
	in.NewVat = dec("newVat")

	stock, err := ParseInt(f.values["currentStock"])
	if err != nil {
		errs["currentStock"] = err.Error()
	}
	in.CurrentStock = stock

	rowNumber := DefaultRowNumber
	if n, err := ParseInt(f.values["rowNumber"]); err != nil {
		errs["rowNumber"] = err.Error()
	} else if n != nil {
		rowNumber = int(*n)
	}
	in.RowNumber = &rowNumber

	return in, errs
}

// ParseDecimal treats blank input as unset.
func ParseDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return &d, nil
}

// ParseInt treats blank input as unset.
func ParseInt(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	return &n, nil
}

// ValidateInput applies the form's required-field rule to a payload that did
// not come through a Form, such as a CSV line.
func ValidateInput(in models.RowInput) error {
	if strings.TrimSpace(in.ProductName) == "" {
		return Errors{"productName": ErrRequired.Error()}
	}
	return nil
}

// Normalize fills defaults a Form would have applied.
func Normalize(in models.RowInput) models.RowInput {
	in.ProductName = strings.TrimSpace(in.ProductName)
	if in.RowNumber == nil {
		n := DefaultRowNumber
		in.RowNumber = &n
	}
	return in
}

func valuesOf(in models.RowInput) map[string]string {
	v := map[string]string{
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
	}
	decs := map[string]*decimal.Decimal{
		"basePriceWithVat":    in.BasePriceWithVat,
		"newBasePriceWithVat": in.NewBasePriceWithVat,
		"vat":                 in.Vat,
		"newVat":              in.NewVat,
	}
	for k, d := range decs {
		if d != nil {
			v[k] = d.String()
		}
	}
	if in.CurrentStock != nil {
		v["currentStock"] = strconv.FormatInt(*in.CurrentStock, 10)
	}
	if in.RowNumber != nil {
		v["rowNumber"] = strconv.Itoa(*in.RowNumber)
	}
	return v
}
