package domain

import "fmt"

// Status is the lifecycle state of a booking.
// The set is closed; no transition graph is enforced client-side.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists every known status in display order.
var Statuses = []Status{
	StatusNew,
	StatusConfirmed,
	StatusInProgress,
	StatusDone,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus converts a raw string to a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status: %q", raw)
	}
	return s, nil
}

// Badge is what the status badge renders for a booking.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"` // info | success | warning | neutral | danger
}

// Badge returns the display label and tone for s.
func (s Status) Badge() Badge {
	switch s {
	case StatusNew:
		return Badge{Label: "New", Tone: "info"}
	case StatusConfirmed:
		return Badge{Label: "Confirmed", Tone: "success"}
	case StatusInProgress:
		return Badge{Label: "In progress", Tone: "warning"}
	case StatusDone:
		return Badge{Label: "Done", Tone: "neutral"}
	case StatusCancelled:
		return Badge{Label: "Cancelled", Tone: "danger"}
	default:
		return Badge{Label: string(s), Tone: "neutral"}
	}
}
