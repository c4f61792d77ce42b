package bookings

import (
	"reflect"
	"slices"
	"testing"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/prefs"
)

func stateWith(items ...domain.Booking) State {
	st := initialState(prefs.Defaults(10))
	st.ServerItems = items
	return st
}

func TestItemsLocalFirst(t *testing.T) {
	st := stateWith(booking("s1", domain.StatusNew, 1, ""), booking("s2", domain.StatusNew, 2, ""))
	st.LocalItems = []domain.Booking{booking("l1", domain.StatusNew, 3, "")}

	if got := ids(Items(st)); !reflect.DeepEqual(got, []string{"l1", "s1", "s2"}) {
		t.Errorf("Items() = %v", got)
	}
}

func TestVisibleItems(t *testing.T) {
	a := booking("a", domain.StatusNew, 10, "2025-01-01T00:00:00Z")
	a.CustomerName = "Alice Martin"
	b := booking("b", domain.StatusConfirmed, 20, "2025-01-02T00:00:00Z")
	b.Address = "42 Rue Sainte-Catherine"
	c := booking("c", domain.StatusDone, 30, "2025-01-03T00:00:00Z")

	tests := []struct {
		name   string
		filter domain.Filter
		query  string
		want   []string
	}{
		{"all", domain.FilterAll, "", []string{"a", "b", "c"}},
		{"new only", domain.FilterNew, "", []string{"a"}},
		{"confirmed only", domain.FilterConfirmed, "", []string{"b"}},
		{"blank query matches all", domain.FilterAll, "   ", []string{"a", "b", "c"}},
		{"query on name, any case", domain.FilterAll, "  ALICE ", []string{"a"}},
		{"query on address", domain.FilterAll, "sainte", []string{"b"}},
		{"filter and query combine", domain.FilterNew, "sainte", []string{}},
		{"no match", domain.FilterAll, "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := stateWith(a, b, c)
			st.Filter = tt.filter
			st.Query = tt.query
			if got := ids(VisibleItems(st)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisibleItems() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortedVisibleItems(t *testing.T) {
	items := []domain.Booking{
		booking("late", domain.StatusNew, 50, "2025-05-01T12:00:00Z"),
		booking("bad-date", domain.StatusNew, 50, "not a date"),
		booking("early", domain.StatusNew, 10, "2025-05-01T08:00:00-04:00"),
		booking("cheap", domain.StatusNew, 5, "2025-06-01T00:00:00Z"),
	}

	tests := []struct {
		name string
		key  domain.SortKey
		dir  domain.SortDir
		want []string
	}{
		{"scheduled asc, unparsable first", domain.SortScheduledAt, domain.SortAsc, []string{"bad-date", "late", "early", "cheap"}},
		{"scheduled desc, ties keep order", domain.SortScheduledAt, domain.SortDesc, []string{"cheap", "late", "early", "bad-date"}},
		{"total asc, ties keep order", domain.SortTotal, domain.SortAsc, []string{"cheap", "early", "late", "bad-date"}},
		{"total desc, ties keep order", domain.SortTotal, domain.SortDesc, []string{"late", "bad-date", "early", "cheap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := stateWith(items...)
			st.SortKey = tt.key
			st.SortDir = tt.dir
			if got := ids(SortedVisibleItems(st)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortedVisibleItems() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Timestamps compare as instants, not as text.
func TestSortComparesInstants(t *testing.T) {
	st := stateWith(
		booking("utc", domain.StatusNew, 1, "2025-05-01T12:30:00Z"),
		booking("offset", domain.StatusNew, 1, "2025-05-01T08:00:00-04:00"),
	)
	if got := ids(SortedVisibleItems(st)); !reflect.DeepEqual(got, []string{"offset", "utc"}) {
		t.Errorf("SortedVisibleItems() = %v, want [offset utc]", got)
	}
}

func TestSortDoesNotMutateState(t *testing.T) {
	st := stateWith(
		booking("b", domain.StatusNew, 2, ""),
		booking("a", domain.StatusNew, 1, ""),
	)
	st.SortKey = domain.SortTotal

	_ = SortedVisibleItems(st)
	if got := ids(st.ServerItems); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("ServerItems reordered to %v", got)
	}
}

func TestPaging(t *testing.T) {
	var items []domain.Booking
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		items = append(items, booking(id, domain.StatusNew, 10, "2025-01-0"+id+"T00:00:00Z"))
	}

	tests := []struct {
		name      string
		n         int
		page      int
		size      int
		wantPages int
		wantItems []string
		wantRange PageRange
	}{
		{"empty", 0, 1, 10, 1, []string{}, PageRange{}},
		{"single page", 3, 1, 10, 1, []string{"1", "2", "3"}, PageRange{1, 3, 3}},
		{"first of three", 7, 1, 3, 3, []string{"1", "2", "3"}, PageRange{1, 3, 7}},
		{"last partial page", 7, 3, 3, 3, []string{"7"}, PageRange{7, 7, 7}},
		{"page past the end clamps", 7, 9, 3, 3, []string{"7"}, PageRange{7, 7, 7}},
		{"exact multiple", 6, 2, 3, 2, []string{"4", "5", "6"}, PageRange{4, 6, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := stateWith(items[:tt.n]...)
			st.Page = tt.page
			st.PageSize = tt.size

			if got := TotalPages(st); got != tt.wantPages {
				t.Errorf("TotalPages() = %d, want %d", got, tt.wantPages)
			}
			if got := ids(PagedSortedVisibleItems(st)); !reflect.DeepEqual(got, tt.wantItems) {
				t.Errorf("PagedSortedVisibleItems() = %v, want %v", got, tt.wantItems)
			}
			if got := PageRangeOf(st); got != tt.wantRange {
				t.Errorf("PageRangeOf() = %+v, want %+v", got, tt.wantRange)
			}

			v := Derive(st)
			if v.TotalPages != tt.wantPages || v.PageRange != tt.wantRange {
				t.Errorf("Derive() pages=%d range=%+v", v.TotalPages, v.PageRange)
			}
		})
	}
}

// Concatenating every page gives back the sorted visible items exactly once.
func TestPagesPartitionSortedItems(t *testing.T) {
	var items []domain.Booking
	totals := []float64{30, 10, 20, 10, 50, 40, 20, 10, 60, 30, 10}
	for i, total := range totals {
		items = append(items, booking(string(rune('a'+i)), domain.StatusNew, total, ""))
	}

	for _, size := range []int{1, 2, 3, 4, 11, 20} {
		for _, dir := range []domain.SortDir{domain.SortAsc, domain.SortDesc} {
			st := stateWith(items...)
			st.SortKey = domain.SortTotal
			st.SortDir = dir
			st.PageSize = size

			var joined []domain.Booking
			for p := 1; p <= TotalPages(st); p++ {
				page := pageOf(st, p)
				if len(page) == 0 || len(page) > size {
					t.Fatalf("size %d %s: page %d has %d items", size, dir, p, len(page))
				}
				joined = append(joined, page...)
			}

			if want := SortedVisibleItems(st); !slices.Equal(ids(joined), ids(want)) {
				t.Errorf("size %d %s: pages = %v, want %v", size, dir, ids(joined), ids(want))
			}
		}
	}
}

// Deriving twice from the same snapshot yields the same sequence.
func TestDeriveIsDeterministic(t *testing.T) {
	st := stateWith(
		booking("a", domain.StatusNew, 10, ""),
		booking("b", domain.StatusConfirmed, 10, ""),
		booking("c", domain.StatusNew, 10, ""),
	)
	st.SortKey = domain.SortTotal
	st.SortDir = domain.SortDesc

	first := ids(SortedVisibleItems(st))
	for i := 0; i < 5; i++ {
		if got := ids(SortedVisibleItems(st)); !reflect.DeepEqual(got, first) {
			t.Fatalf("SortedVisibleItems() = %v, then %v", first, got)
		}
	}
}

func TestCountsIgnoreFilterAndQuery(t *testing.T) {
	st := stateWith(
		booking("1", domain.StatusNew, 1, ""),
		booking("2", domain.StatusConfirmed, 1, ""),
		booking("3", domain.StatusCancelled, 1, ""),
	)
	st.LocalItems = []domain.Booking{booking("4", domain.StatusNew, 1, "")}
	st.Filter = domain.FilterConfirmed
	st.Query = "nothing matches this"

	want := Counts{All: 4, New: 2, Confirmed: 1}
	if got := CountsOf(st); got != want {
		t.Errorf("CountsOf() = %+v, want %+v", got, want)
	}
	if v := Derive(st); v.Counts != want || v.Visible != 0 {
		t.Errorf("Derive() counts=%+v visible=%d", v.Counts, v.Visible)
	}
}

// pageOf returns the given 1-based page of the sorted visible items.
func pageOf(st State, page int) []domain.Booking {
	return pageSlice(SortedVisibleItems(st), page, st.PageSize)
}
