package bookings

import (
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
)

// DefaultUndoWindow is how long a deleted booking can be restored.
const DefaultUndoWindow = 5 * time.Second

// Resolution records how an undo window closed.
type Resolution string

const (
	ResolutionNone       Resolution = ""
	ResolutionExpired    Resolution = "EXPIRED"
	ResolutionUndone     Resolution = "UNDONE"
	ResolutionSuperseded Resolution = "SUPERSEDED"
	ResolutionRolledBack Resolution = "ROLLED_BACK"
)

// stopper is the part of *time.Timer the store needs.
type stopper interface {
	Stop() bool
}

// afterFunc schedules f after d. Tests swap it for a manual clock.
type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// undoWindow is the state machine behind one optimistic delete:
// ACTIVE until it resolves exactly once, by expiry, undo, a newer delete, or
// a failed delete request.
type undoWindow struct {
	gen        uint64
	booking    domain.Booking
	expiresAt  time.Time
	timer      stopper
	resolution Resolution
}

func (w *undoWindow) active() bool {
	return w != nil && w.resolution == ResolutionNone
}

// resolve closes the window and cancels its timer. It reports false when the
// window was already resolved.
func (w *undoWindow) resolve(r Resolution) bool {
	if !w.active() {
		return false
	}
	w.resolution = r
	if w.timer != nil {
		w.timer.Stop()
	}
	return true
}
