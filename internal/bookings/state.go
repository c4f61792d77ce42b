package bookings

import (
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/prefs"
)

// State is one committed snapshot of the dashboard.
//
// Item slices are never modified in place once committed: every transition
// builds new slices, so an older snapshot stays valid for rollback.
type State struct {
	Filter   domain.Filter
	Page     int // 1-based
	PageSize int
	SortKey  domain.SortKey
	SortDir  domain.SortDir
	Query    string

	// ServerItems is the last successful fetch, in fetch order.
	ServerItems []domain.Booking
	// LocalItems are bookings not known to be on the server, newest first.
	LocalItems []domain.Booking

	PendingDelete *PendingDelete

	Loading bool
	Error   string // empty when there is no error

	// Version increases by one on every committed transition.
	Version uint64
}

// PendingDelete is the booking held by the open undo window.
type PendingDelete struct {
	Booking   domain.Booking `json:"booking"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

func initialState(p prefs.Prefs) State {
	return State{
		Filter:      p.Filter,
		Page:        1,
		PageSize:    p.PageSize,
		SortKey:     p.SortKey,
		SortDir:     p.SortDir,
		Query:       p.Query,
		ServerItems: []domain.Booking{},
		LocalItems:  []domain.Booking{},
	}
}

// Prefs extracts the persisted subset.
func (s State) Prefs() prefs.Prefs {
	return prefs.Prefs{
		Filter:   s.Filter,
		SortKey:  s.SortKey,
		SortDir:  s.SortDir,
		PageSize: s.PageSize,
		Query:    s.Query,
	}
}

// Clone returns a deep copy safe to hand out to callers.
func (s State) Clone() State {
	out := s
	out.ServerItems = cloneItems(s.ServerItems)
	out.LocalItems = cloneItems(s.LocalItems)
	if s.PendingDelete != nil {
		pd := *s.PendingDelete
		out.PendingDelete = &pd
	}
	return out
}

// ─────────────────────────────────────────────────────────────────
// Copy-on-write helpers
// ─────────────────────────────────────────────────────────────────

func cloneItems(items []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, len(items))
	copy(out, items)
	return out
}

func indexOf(items []domain.Booking, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func prepend(b domain.Booking, items []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(items)+1)
	out = append(out, b)
	return append(out, items...)
}

func removeAt(items []domain.Booking, i int) []domain.Booking {
	out := make([]domain.Booking, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func replaceAt(items []domain.Booking, i int, b domain.Booking) []domain.Booking {
	out := cloneItems(items)
	out[i] = b
	return out
}

// withoutIDs drops every item whose ID is in ids.
func withoutIDs(items []domain.Booking, ids map[string]struct{}) []domain.Booking {
	out := make([]domain.Booking, 0, len(items))
	for _, b := range items {
		if _, drop := ids[b.ID]; !drop {
			out = append(out, b)
		}
	}
	return out
}

func idSet(items []domain.Booking) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, b := range items {
		set[b.ID] = struct{}{}
	}
	return set
}
