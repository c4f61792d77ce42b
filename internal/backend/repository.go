// Package backend is an in-memory implementation of the booking REST API,
// used for local development and as the server side of integration tests.
package backend

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
)

// ErrNotFound is returned when no booking has the requested id.
var ErrNotFound = errors.New("booking not found")

// Repository holds bookings in memory, newest first.
type Repository struct {
	mu    sync.RWMutex
	items []domain.Booking
	newID func() string
}

// NewRepository returns a repository seeded with items.
func NewRepository(items []domain.Booking) *Repository {
	return &Repository{
		items: slices.Clone(items),
		newID: uuid.NewString,
	}
}

// List returns a copy of every booking.
func (r *Repository) List() []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.items)
	if out == nil {
		out = []domain.Booking{}
	}
	return out
}

// Get returns the booking with the given id.
func (r *Repository) Get(id string) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.items[i], nil
	}
	return domain.Booking{}, ErrNotFound
}

// Create stores a new booking built from d with a fresh id, status NEW and
// paid defaulting to false.
func (r *Repository) Create(d domain.Draft) (domain.Booking, error) {
	if err := d.Validate(); err != nil {
		return domain.Booking{}, err
	}
	d = d.Normalized()

	b := domain.Booking{
		ID:             r.newID(),
		CustomerName:   d.CustomerName,
		Address:        d.Address,
		ScheduledAtISO: d.ScheduledAtISO,
		TotalCAD:       d.TotalCAD,
		Status:         domain.StatusNew,
	}
	if d.Paid != nil {
		b.Paid = *d.Paid
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]domain.Booking{b}, r.items...)
	return b, nil
}

// Confirm sets the booking's status to CONFIRMED.
func (r *Repository) Confirm(id string) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return domain.Booking{}, ErrNotFound
	}
	r.items[i].Status = domain.StatusConfirmed
	return r.items[i], nil
}

// Delete removes the booking.
func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// Len returns the number of stored bookings.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Repository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(b domain.Booking) bool { return b.ID == id })
}
