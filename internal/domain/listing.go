package domain

import "fmt"

// Filter narrows the booking list by status.
type Filter string

const (
	FilterAll       Filter = "ALL"
	FilterNew       Filter = "NEW"
	FilterConfirmed Filter = "CONFIRMED"
)

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterNew || f == FilterConfirmed
}

// Matches reports whether b passes the filter. ALL lets everything through.
func (f Filter) Matches(b Booking) bool {
	switch f {
	case FilterNew:
		return b.Status == StatusNew
	case FilterConfirmed:
		return b.Status == StatusConfirmed
	default:
		return true
	}
}

// ParseFilter converts a raw string to a Filter.
func ParseFilter(raw string) (Filter, error) {
	f := Filter(raw)
	if !f.Valid() {
		return "", fmt.Errorf("unknown filter: %q", raw)
	}
	return f, nil
}

// SortKey selects the field bookings are ordered by.
type SortKey string

const (
	SortScheduledAt SortKey = "SCHEDULED_AT"
	SortTotal       SortKey = "TOTAL"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	return k == SortScheduledAt || k == SortTotal
}

// ParseSortKey converts a raw string to a SortKey.
func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(raw)
	if !k.Valid() {
		return "", fmt.Errorf("unknown sort key: %q", raw)
	}
	return k, nil
}

// SortDir is the ordering direction.
type SortDir string

const (
	SortAsc  SortDir = "ASC"
	SortDesc SortDir = "DESC"
)

// Valid reports whether d is a known direction.
func (d SortDir) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Toggle flips the direction.
func (d SortDir) Toggle() SortDir {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ParseSortDir converts a raw string to a SortDir.
func ParseSortDir(raw string) (SortDir, error) {
	d := SortDir(raw)
	if !d.Valid() {
		return "", fmt.Errorf("unknown sort direction: %q", raw)
	}
	return d, nil
}
