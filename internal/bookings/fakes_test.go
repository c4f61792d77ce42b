package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/prefs"
)

// fakeAPI is an in-memory remote API with switchable failures.
type fakeAPI struct {
	mu         sync.Mutex
	items      []domain.Booking
	nextID     int
	calls      []string
	listErr    error
	createErr  error
	confirmErr error
	deleteErr  error
	listGate   chan struct{} // when set, List waits for it to close
	deleteGate chan struct{} // when set, Delete waits for it to close
}

func newFakeAPI(items ...domain.Booking) *fakeAPI {
	return &fakeAPI{items: items, nextID: 100}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeAPI) List(context.Context) ([]domain.Booking, error) {
	f.record("list")
	f.mu.Lock()
	gate := f.listGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Booking, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeAPI) Create(_ context.Context, d domain.Draft) (domain.Booking, error) {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.Booking{}, f.createErr
	}
	f.nextID++
	b := domain.Booking{
		ID:             fmt.Sprint(f.nextID),
		CustomerName:   d.CustomerName,
		Address:        d.Address,
		ScheduledAtISO: d.ScheduledAtISO,
		TotalCAD:       d.TotalCAD,
		Status:         domain.StatusNew,
	}
	if d.Paid != nil {
		b.Paid = *d.Paid
	}
	f.items = append([]domain.Booking{b}, f.items...)
	return b, nil
}

// set runs fn under the fake's lock, for changes made while calls may be in
// flight.
func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) Confirm(_ context.Context, id string) (domain.Booking, error) {
	f.record("confirm:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmErr != nil {
		return domain.Booking{}, f.confirmErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = domain.StatusConfirmed
			f.items[i].Paid = true // server-side change the client did not make
			return f.items[i], nil
		}
	}
	return domain.Booking{}, errors.New("booking not found")
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.record("delete:" + id)
	f.mu.Lock()
	gate := f.deleteGate
	err := f.deleteErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

// manualTimers replaces time.AfterFunc so tests decide when windows expire.
type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (m *manualTimers) AfterFunc(_ time.Duration, f func()) stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{f: f}
	m.timers = append(m.timers, t)
	return t
}

// Fire runs timer i as if it expired, even if it was stopped too late.
func (m *manualTimers) Fire(i int) {
	m.mu.Lock()
	t := m.timers[i]
	m.mu.Unlock()

	t.mu.Lock()
	t.fired = true
	t.mu.Unlock()
	t.f()
}

func (m *manualTimers) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *manualTimers) Stopped(i int) bool {
	m.mu.Lock()
	t := m.timers[i]
	m.mu.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// recordingPrefs keeps every saved value.
type recordingPrefs struct {
	mu      sync.Mutex
	stored  *prefs.Prefs
	saves   []prefs.Prefs
	saveErr error
}

func (r *recordingPrefs) Load(context.Context) (prefs.Prefs, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return prefs.Prefs{}, false
	}
	return *r.stored, true
}

func (r *recordingPrefs) Save(_ context.Context, p prefs.Prefs) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, p)
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored = &p
	return nil
}

func (r *recordingPrefs) Last() (prefs.Prefs, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return prefs.Prefs{}, 0
	}
	return r.saves[len(r.saves)-1], len(r.saves)
}

func booking(id string, status domain.Status, total float64, at string) domain.Booking {
	return domain.Booking{
		ID:             id,
		CustomerName:   "Customer " + id,
		Address:        id + " Elm Street",
		ScheduledAtISO: at,
		TotalCAD:       total,
		Status:         status,
	}
}

func ids(items []domain.Booking) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.ID
	}
	return out
}
