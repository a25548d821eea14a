package models

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Toggle flips ASC and DESC.
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// ParseDirection accepts asc/desc in any case and defaults to ASC.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Text attributes that accept a per-field filter.
var TextFields = []string{
	"merchantInventoryId",
	"productName",
	"ean",
	"aCode",
	"sku",
	"tags",
	"status",
	"warehouse",
	"l1Category",
	"productType",
}

// Numeric attributes that accept a min/max range.
var NumericFields = []string{
	"basePriceWithVat",
	"currentStock",
	"newBasePriceWithVat",
	"vat",
	"newVat",
}

var SortableFields = []string{
	"productName",
	"basePriceWithVat",
	"currentStock",
}

func IsTextField(name string) bool { return contains(TextFields, name) }
func IsNumericField(name string) bool { return contains(NumericFields, name) }
func IsSortableField(name string) bool { return contains(SortableFields, name) }

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// Range bounds a numeric attribute. Either end may be unset.
type Range struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Filter is what the user typed into the search panel: freeform text or
// per-field filters.
type Filter struct {
	Search string
	Fields map[string]string
	Ranges map[string]Range
}

// IsEmpty reports whether the filter would narrow the listing at all.
func (f Filter) IsEmpty() bool {
	if strings.TrimSpace(f.Search) != "" {
		return false
	}
	for _, v := range f.Fields {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	for _, r := range f.Ranges {
		if !r.IsZero() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so states holding a filter never share maps.
func (f Filter) Clone() Filter {
	out := Filter{Search: f.Search}
	if f.Fields != nil {
		out.Fields = make(map[string]string, len(f.Fields))
		for k, v := range f.Fields {
			out.Fields[k] = v
		}
	}
	if f.Ranges != nil {
		out.Ranges = make(map[string]Range, len(f.Ranges))
		for k, v := range f.Ranges {
			out.Ranges[k] = v
		}
	}
	return out
}

// SearchRequest is the composed wire query for GET and POST /search.
type SearchRequest struct {
	Search    string
	Fields    map[string]string
	Ranges    map[string]Range
	Page      int
	Size      int
	Sort      string
	Direction Direction
}

// HasFieldFilters reports whether any per-field filter is carried.
func (r SearchRequest) HasFieldFilters() bool {
	return len(r.Fields) > 0 || len(r.Ranges) > 0
}

// Values encodes the request as URL query parameters. Ranges become
// <field>Min and <field>Max.
func (r SearchRequest) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(r.Page))
	v.Set("size", strconv.Itoa(r.Size))
	if r.Sort != "" {
		v.Set("sort", r.Sort)
		v.Set("direction", string(r.Direction))
	}
	if r.Search != "" {
		v.Set("search", r.Search)
	}
	for k, val := range r.Fields {
		v.Set(k, val)
	}
	for k, rng := range r.Ranges {
		if rng.Min != nil {
			v.Set(k+"Min", rng.Min.String())
		}
		if rng.Max != nil {
			v.Set(k+"Max", rng.Max.String())
		}
	}
	return v
}

// MarshalJSON flattens the request into the body shape POST /search expects.
func (r SearchRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"page": r.Page,
		"size": r.Size,
	}
	if r.Sort != "" {
		body["sort"] = r.Sort
		body["direction"] = r.Direction
	}
	if r.Search != "" {
		body["search"] = r.Search
	}
	for k, v := range r.Fields {
		body[k] = v
	}
	for k, rng := range r.Ranges {
		if rng.Min != nil {
			body[k+"Min"] = *rng.Min
		}
		if rng.Max != nil {
			body[k+"Max"] = *rng.Max
		}
	}
	return json.Marshal(body)
}

// Describe renders the active filters for status lines, in a stable order.
func (r SearchRequest) Describe() string {
	if r.Search != "" {
		return "search=" + strconv.Quote(r.Search)
	}
	var parts []string
	for k, v := range r.Fields {
		parts = append(parts, k+"="+strconv.Quote(v))
	}
	for k, rng := range r.Ranges {
		lo, hi := "", ""
		if rng.Min != nil {
			lo = rng.Min.String()
		}
		if rng.Max != nil {
			hi = rng.Max.String()
		}
		parts = append(parts, k+"="+lo+".."+hi)
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
