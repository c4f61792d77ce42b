package bookings

import (
	"cmp"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
)

// PageRange is the 1-based inclusive range shown on the current page.
type PageRange struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Total int `json:"total"`
}

// Counts are computed over all items, ignoring filter and search.
type Counts struct {
	All       int `json:"all"`
	New       int `json:"new"`
	Confirmed int `json:"confirmed"`
}

// View is everything a presentation surface renders, derived from a single
// snapshot. Slices in a View are shared between readers and must not be
// modified.
type View struct {
	Version uint64

	Filter   domain.Filter
	Query    string
	SortKey  domain.SortKey
	SortDir  domain.SortDir
	Page     int
	PageSize int

	TotalPages int
	Items      []domain.Booking // current page of the sorted visible items
	Visible    int              // number of sorted visible items
	PageRange  PageRange
	Counts     Counts

	PendingDelete *PendingDelete
	Loading       bool
	Error         string
}

// Derive computes the View of st.
func Derive(st State) View {
	sorted := SortedVisibleItems(st)
	total := totalPages(len(sorted), st.PageSize)
	page := clampPage(st.Page, total)

	v := View{
		Version:    st.Version,
		Filter:     st.Filter,
		Query:      st.Query,
		SortKey:    st.SortKey,
		SortDir:    st.SortDir,
		Page:       page,
		PageSize:   st.PageSize,
		TotalPages: total,
		Items:      pageSlice(sorted, page, st.PageSize),
		Visible:    len(sorted),
		PageRange:  pageRange(len(sorted), page, st.PageSize),
		Counts:     CountsOf(st),
		Loading:    st.Loading,
		Error:      st.Error,
	}
	if st.PendingDelete != nil {
		pd := *st.PendingDelete
		v.PendingDelete = &pd
	}
	return v
}

// Items is LocalItems followed by ServerItems.
func Items(st State) []domain.Booking {
	out := make([]domain.Booking, 0, len(st.LocalItems)+len(st.ServerItems))
	out = append(out, st.LocalItems...)
	return append(out, st.ServerItems...)
}

// VisibleItems applies the status filter, then the search query.
func VisibleItems(st State) []domain.Booking {
	q := strings.ToLower(strings.TrimSpace(st.Query))
	items := Items(st)

	out := make([]domain.Booking, 0, len(items))
	for _, b := range items {
		if !st.Filter.Matches(b) {
			continue
		}
		if q != "" && !strings.Contains(b.SearchText(), q) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SortedVisibleItems orders VisibleItems by the sort key and direction.
// Equal keys keep their relative order.
func SortedVisibleItems(st State) []domain.Booking {
	items := VisibleItems(st)

	compare := func(a, b domain.Booking) int {
		if st.SortKey == domain.SortTotal {
			return cmp.Compare(a.TotalCAD, b.TotalCAD)
		}
		return a.ScheduledAt().Compare(b.ScheduledAt())
	}
	if st.SortDir == domain.SortDesc {
		asc := compare
		compare = func(a, b domain.Booking) int { return asc(b, a) }
	}

	slices.SortStableFunc(items, compare)
	return items
}

// TotalPages is never less than one.
func TotalPages(st State) int {
	return totalPages(len(SortedVisibleItems(st)), st.PageSize)
}

// PagedSortedVisibleItems is the current page of the sorted visible items.
func PagedSortedVisibleItems(st State) []domain.Booking {
	sorted := SortedVisibleItems(st)
	page := clampPage(st.Page, totalPages(len(sorted), st.PageSize))
	return pageSlice(sorted, page, st.PageSize)
}

// PageRangeOf describes the current page, or {0,0,0} when nothing is visible.
func PageRangeOf(st State) PageRange {
	n := len(SortedVisibleItems(st))
	return pageRange(n, clampPage(st.Page, totalPages(n, st.PageSize)), st.PageSize)
}

// CountsOf tallies all items regardless of filter and query.
func CountsOf(st State) Counts {
	c := Counts{}
	for _, items := range [][]domain.Booking{st.LocalItems, st.ServerItems} {
		for _, b := range items {
			c.All++
			switch b.Status {
			case domain.StatusNew:
				c.New++
			case domain.StatusConfirmed:
				c.Confirmed++
			}
		}
	}
	return c
}

func totalPages(n, size int) int {
	if size < 1 {
		size = 1
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

func pageSlice(sorted []domain.Booking, page, size int) []domain.Booking {
	if size < 1 {
		size = 1
	}
	start := (page - 1) * size
	if page < 1 || start >= len(sorted) {
		return []domain.Booking{}
	}
	end := min(start+size, len(sorted))
	return sorted[start:end]
}

func pageRange(n, page, size int) PageRange {
	if n == 0 {
		return PageRange{}
	}
	if size < 1 {
		size = 1
	}
	from := (page-1)*size + 1
	return PageRange{
		From:  from,
		To:    min(page*size, n),
		Total: n,
	}
}
