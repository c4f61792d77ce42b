package backend

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
)

func seedBookings() []domain.Booking {
	return []domain.Booking{
		{ID: "1", CustomerName: "A", Address: "1 St", ScheduledAtISO: "2025-01-01T00:00:00Z", TotalCAD: 10, Status: domain.StatusNew},
		{ID: "2", CustomerName: "B", Address: "2 St", ScheduledAtISO: "2025-01-02T00:00:00Z", TotalCAD: 20, Status: domain.StatusConfirmed},
	}
}

func TestRepositoryCreate(t *testing.T) {
	repo := NewRepository(seedBookings())
	repo.newID = func() string { return "fixed" }

	b, err := repo.Create(domain.Draft{
		CustomerName:   " Jean ",
		Address:        "3 St",
		ScheduledAtISO: "2025-01-03T00:00:00Z",
		TotalCAD:       30,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if b.ID != "fixed" || b.Status != domain.StatusNew || b.Paid || b.CustomerName != "Jean" {
		t.Errorf("Create() = %+v", b)
	}
	if got := repo.List()[0].ID; got != "fixed" {
		t.Errorf("newest booking should be listed first, got %s", got)
	}
}

func TestRepositoryCreateInvalid(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.Create(domain.Draft{CustomerName: "x"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create() error = %v, want *ValidationError", err)
	}
	if repo.Len() != 0 {
		t.Error("invalid draft should not be stored")
	}
}

func TestRepositoryConfirmAndDelete(t *testing.T) {
	repo := NewRepository(seedBookings())

	b, err := repo.Confirm("1")
	if err != nil || b.Status != domain.StatusConfirmed {
		t.Fatalf("Confirm() = %+v, %v", b, err)
	}
	if _, err := repo.Confirm("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Confirm(nope) error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete("1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete("1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if repo.Len() != 1 {
		t.Errorf("Len() = %d, want 1", repo.Len())
	}
}

func TestRepositoryListIsACopy(t *testing.T) {
	repo := NewRepository(seedBookings())

	items := repo.List()
	items[0].CustomerName = "changed"

	if b, _ := repo.Get("1"); b.CustomerName != "A" {
		t.Error("List() must not expose internal storage")
	}
}
