// Package dto holds the JSON shapes served by the dashboard API and the
// live feed.
package dto

import (
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/bookings"
	"github.com/MrSnakeDoc/bookingdash/internal/domain"
)

// BookingItem is a booking row with its status badge.
type BookingItem struct {
	domain.Booking
	Badge domain.Badge `json:"badge"`
}

type PendingDelete struct {
	Booking   BookingItem `json:"booking"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// View is the list page: current page, paging, counts and status flags.
type View struct {
	Version    uint64             `json:"version"`
	Filter     domain.Filter      `json:"filter"`
	Query      string             `json:"query"`
	SortKey    domain.SortKey     `json:"sortKey"`
	SortDir    domain.SortDir     `json:"sortDir"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
	Items      []BookingItem      `json:"items"`
	Visible    int                `json:"visible"`
	PageRange  bookings.PageRange `json:"pageRange"`
	Counts     bookings.Counts    `json:"counts"`

	PendingDelete *PendingDelete `json:"pendingDelete"`
	Loading       bool           `json:"loading"`
	Error         *string        `json:"error"`
}

// FromView converts a store view.
func FromView(v bookings.View) View {
	out := View{
		Version:    v.Version,
		Filter:     v.Filter,
		Query:      v.Query,
		SortKey:    v.SortKey,
		SortDir:    v.SortDir,
		Page:       v.Page,
		PageSize:   v.PageSize,
		TotalPages: v.TotalPages,
		Items:      make([]BookingItem, 0, len(v.Items)),
		Visible:    v.Visible,
		PageRange:  v.PageRange,
		Counts:     v.Counts,
		Loading:    v.Loading,
	}
	for _, b := range v.Items {
		out.Items = append(out.Items, item(b))
	}
	if v.PendingDelete != nil {
		out.PendingDelete = &PendingDelete{
			Booking:   item(v.PendingDelete.Booking),
			ExpiresAt: v.PendingDelete.ExpiresAt,
		}
	}
	if v.Error != "" {
		msg := v.Error
		out.Error = &msg
	}
	return out
}

func item(b domain.Booking) BookingItem {
	return BookingItem{Booking: b, Badge: b.Status.Badge()}
}

// Error is the body of a rejected request.
type Error struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// ViewPatch is the body of PATCH /api/view. Absent fields are left alone.
type ViewPatch struct {
	Query    *string `json:"query"`
	Filter   *string `json:"filter"`
	SortKey  *string `json:"sortKey"`
	PageSize *int    `json:"pageSize"`
}

// Live is one message on the live feed.
type Live struct {
	Type string `json:"type"` // "view"
	View View   `json:"view"`
}
