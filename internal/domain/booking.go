package domain

import (
	"strings"
	"time"
)

// Booking represents one cleaning-service appointment as known by the
// remote booking API.
type Booking struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by the remote API on creation.
	// It is never generated or reused client-side.
	ID string `json:"id"`

	// ─────────────────────────────
	// Customer
	// ─────────────────────────────

	CustomerName string `json:"customerName"`
	Address      string `json:"address"`

	// ─────────────────────────────
	// Scheduling & billing
	// ─────────────────────────────

	// ScheduledAtISO is an absolute RFC 3339 timestamp with offset.
	// It is the only time representation carried by a booking.
	ScheduledAtISO string `json:"scheduledAtIso"`

	// TotalCAD is the amount due, in Canadian dollars.
	TotalCAD float64 `json:"totalCad"`

	Paid bool `json:"paid"`

	// ─────────────────────────────
	// Lifecycle
	// ─────────────────────────────

	Status Status `json:"status"`
}

// ScheduledAt parses ScheduledAtISO. Unparsable values yield the Unix epoch so
// that sorting never fails.
func (b Booking) ScheduledAt() time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(b.ScheduledAtISO))
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}

// SearchText is the haystack matched by free-text search.
func (b Booking) SearchText() string {
	return strings.ToLower(b.CustomerName + " " + b.Address)
}
