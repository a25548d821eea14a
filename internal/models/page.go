package models

// Page is one window over the row collection.
type Page struct {
	Content       []Row `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// TotalPagesFor returns ceil(total/size), or 0 when size is not positive.
func TotalPagesFor(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

// CanVisit reports whether n is a valid page index for this page's collection.
func (p *Page) CanVisit(n int) bool {
	return n >= 0 && n < p.TotalPages
}

func (p *Page) HasPrev() bool {
	return p.Number > 0
}

func (p *Page) HasNext() bool {
	return p.Number < p.TotalPages-1
}

// IsEmpty reports whether the whole collection (not just this window) is empty.
func (p *Page) IsEmpty() bool {
	return p.TotalElements == 0
}
