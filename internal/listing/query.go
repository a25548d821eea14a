package listing

import (
	"strings"

	"excelPanel/internal/models"
)

// Compose turns a State into the backend query. Freeform search text and
// per-field filters are mutually exclusive: when the text is non-empty the
// field filters are dropped here, whatever the input layer allowed through.
func Compose(s State) models.SearchRequest {
	req := models.SearchRequest{Page: s.Page, Size: s.Size}
	if s.SortField != "" {
		req.Sort = s.SortField
		req.Direction = s.SortDirection
		if req.Direction == "" {
			req.Direction = models.Asc
		}
	}
	if !s.SearchMode {
		return req
	}

	if search := strings.TrimSpace(s.Filter.Search); search != "" {
		req.Search = search
		return req
	}

	for name, value := range s.Filter.Fields {
		value = strings.TrimSpace(value)
		if value == "" || !models.IsTextField(name) {
			continue
		}
		if req.Fields == nil {
			req.Fields = make(map[string]string)
		}
		req.Fields[name] = value
	}
	for name, rng := range s.Filter.Ranges {
		if rng.IsZero() || !models.IsNumericField(name) {
			continue
		}
		if req.Ranges == nil {
			req.Ranges = make(map[string]models.Range)
		}
		req.Ranges[name] = rng
	}
	return req
}

// IsPlain reports whether req can be served by the unfiltered list endpoint.
func IsPlain(req models.SearchRequest) bool {
	return req.Search == "" && req.Sort == "" && !req.HasFieldFilters()
}
