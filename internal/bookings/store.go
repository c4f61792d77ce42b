// Package bookings holds the dashboard state store: server and local booking
// collections, list settings, the undo window, and the derived views built
// from them.
package bookings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
	"github.com/MrSnakeDoc/bookingdash/internal/prefs"
)

// API is the remote booking service the store reconciles against.
type API interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Create(ctx context.Context, draft domain.Draft) (domain.Booking, error)
	Confirm(ctx context.Context, id string) (domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// PrefsRepository persists the UI preference subset of the state.
type PrefsRepository interface {
	Load(ctx context.Context) (prefs.Prefs, bool)
	Save(ctx context.Context, p prefs.Prefs) error
}

// Options configures a Store.
type Options struct {
	API             API
	Prefs           PrefsRepository // optional
	Logger          logger.Logger
	UndoWindow      time.Duration // defaults to DefaultUndoWindow
	DefaultPageSize int           // defaults to 10
}

// Store owns the dashboard state. Every operation commits whole snapshots
// under a single lock; remote calls run outside the lock and their results
// are committed against whatever snapshot is current when they return.
//
// Remote failures are recorded in the snapshot's Error field. Operations also
// return them, but callers are free to ignore the returned error.
type Store struct {
	api       API
	prefs     PrefsRepository
	logger    logger.Logger
	undoAfter time.Duration
	afterFunc afterFunc
	timeNow   func() time.Time
	mu        sync.Mutex
	state     State
	undo      *undoWindow
	undoGen   uint64
	view      *View
	subs      map[uint64]chan View
	nextSubID uint64
}

// New creates a Store, restoring UI preferences from opts.Prefs when present.
func New(ctx context.Context, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	window := opts.UndoWindow
	if window <= 0 {
		window = DefaultUndoWindow
	}

	p := prefs.Defaults(opts.DefaultPageSize)
	if opts.Prefs != nil {
		if restored, ok := opts.Prefs.Load(ctx); ok {
			p = restored
			log.Debug("restored ui preferences",
				logger.String("filter", string(p.Filter)),
				logger.String("sort_key", string(p.SortKey)),
				logger.String("sort_dir", string(p.SortDir)),
				logger.Int("page_size", p.PageSize))
		}
	}

	return &Store{
		api:       opts.API,
		prefs:     opts.Prefs,
		logger:    log,
		undoAfter: window,
		afterFunc: realAfterFunc,
		timeNow:   time.Now,
		state:     initialState(p),
		subs:      make(map[uint64]chan View),
	}
}

// ─────────────────────────────────────────────────────────────────
// Reads
// ─────────────────────────────────────────────────────────────────

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// View returns the derived views of the current snapshot. It is computed at
// most once per version.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Store) viewLocked() View {
	if s.view == nil || s.view.Version != s.state.Version {
		v := Derive(s.state)
		s.view = &v
	}
	return *s.view
}

// Subscribe returns a channel receiving the view after every commit. Slow
// readers only ever see the latest view. cancel releases the subscription.
func (s *Store) Subscribe() (views <-chan View, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan View, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// ─────────────────────────────────────────────────────────────────
// Commit
// ─────────────────────────────────────────────────────────────────

// update applies fn to a copy of the current snapshot and commits it when fn
// reports a change.
func (s *Store) update(op string, fn func(st *State) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(op, fn)
}

func (s *Store) applyLocked(op string, fn func(st *State) bool) bool {
	next := s.state
	if !fn(&next) {
		return false
	}
	// Removals and reloads can shrink the list under the current page.
	next.Page = clampPage(next.Page, totalPages(len(VisibleItems(next)), next.PageSize))
	next.Version = s.state.Version + 1
	s.state = next

	s.logger.Debug("bookings state committed",
		logger.String("op", op),
		logger.Uint64("version", next.Version),
		logger.Int("server_items", len(next.ServerItems)),
		logger.Int("local_items", len(next.LocalItems)))

	s.publishLocked()
	return true
}

func (s *Store) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	v := s.viewLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// ─────────────────────────────────────────────────────────────────
// Remote operations
// ─────────────────────────────────────────────────────────────────

// Load fetches the server collection. Local items survive a reload; on
// failure the previous items stay visible and Error is set.
func (s *Store) Load(ctx context.Context) error {
	s.update("load.start", func(st *State) bool {
		st.Loading = true
		st.Error = ""
		return true
	})

	items, err := s.api.List(ctx)
	if err != nil {
		s.fail("load.failed", err)
		return err
	}

	fetched := cloneItems(items)
	s.update("load.done", func(st *State) bool {
		st.ServerItems = fetched
		// A local item the server now reports is no longer local-only.
		st.LocalItems = withoutIDs(st.LocalItems, idSet(fetched))
		st.Loading = false
		return true
	})
	s.logger.Debug("bookings loaded", logger.Int("count", len(fetched)))
	return nil
}

// Create submits draft and waits for the server-assigned booking before
// showing it. Nothing is added optimistically.
func (s *Store) Create(ctx context.Context, draft domain.Draft) (domain.Booking, error) {
	s.update("create.start", func(st *State) bool {
		st.Loading = true
		st.Error = ""
		return true
	})

	created, err := s.api.Create(ctx, draft)
	if err != nil {
		s.fail("create.failed", err)
		return domain.Booking{}, err
	}

	s.update("create.done", func(st *State) bool {
		if i := indexOf(st.LocalItems, created.ID); i >= 0 {
			st.LocalItems = removeAt(st.LocalItems, i)
		}
		if i := indexOf(st.ServerItems, created.ID); i >= 0 {
			st.ServerItems = removeAt(st.ServerItems, i)
		}
		st.ServerItems = prepend(created, st.ServerItems)
		st.Page = 1
		st.Loading = false
		return true
	})
	s.logger.Info("booking created", logger.String("id", created.ID))
	return created, nil
}

// Confirm marks the booking CONFIRMED right away. Only bookings held in the
// server collection are confirmed remotely.
//
// A failed confirm request leaves the optimistic CONFIRMED status in place
// and only sets Error. Unlike Delete there is no rollback: once a booking has
// been shown as confirmed it is not silently flipped back.
func (s *Store) Confirm(ctx context.Context, id string) error {
	var onServer bool
	found := s.update("confirm.optimistic", func(st *State) bool {
		hit := false
		if i := indexOf(st.ServerItems, id); i >= 0 {
			b := st.ServerItems[i]
			b.Status = domain.StatusConfirmed
			st.ServerItems = replaceAt(st.ServerItems, i, b)
			onServer, hit = true, true
		}
		if i := indexOf(st.LocalItems, id); i >= 0 {
			b := st.LocalItems[i]
			b.Status = domain.StatusConfirmed
			st.LocalItems = replaceAt(st.LocalItems, i, b)
			hit = true
		}
		if hit {
			st.Error = ""
		}
		return hit
	})
	if !found || !onServer {
		return nil
	}

	confirmed, err := s.api.Confirm(ctx, id)
	if err != nil {
		// Confirm never set Loading; a Load in flight still owns it.
		s.recordFailure("confirm.failed", err, false)
		return err
	}

	s.update("confirm.done", func(st *State) bool {
		i := indexOf(st.ServerItems, id)
		if i < 0 {
			return false
		}
		st.ServerItems = replaceAt(st.ServerItems, i, confirmed)
		return true
	})
	return nil
}

// Delete removes the booking optimistically and opens an undo window,
// closing any previous one. A server-held booking is then deleted remotely;
// if that fails the snapshot from before the delete is restored as is and
// the undo window is dropped.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	prior := s.state
	var (
		removed  domain.Booking
		onServer bool
	)
	found := s.applyLocked("delete.optimistic", func(st *State) bool {
		if i := indexOf(st.ServerItems, id); i >= 0 {
			removed, onServer = st.ServerItems[i], true
			st.ServerItems = removeAt(st.ServerItems, i)
		} else if i := indexOf(st.LocalItems, id); i >= 0 {
			removed = st.LocalItems[i]
			st.LocalItems = removeAt(st.LocalItems, i)
		} else {
			return false
		}
		st.Error = ""
		st.PendingDelete = s.openUndoLocked(removed)
		return true
	})
	s.mu.Unlock()

	if !found || !onServer {
		return nil
	}

	if err := s.api.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.applyLocked("delete.rollback", func(st *State) bool {
			if s.undo != nil {
				s.closeUndoLocked(ResolutionRolledBack)
			}
			*st = prior
			st.PendingDelete = nil
			st.Error = err.Error()
			return true
		})
		s.mu.Unlock()
		s.logger.Warn("booking delete failed, restored previous state",
			logger.String("id", id),
			logger.Error(err))
		return err
	}

	s.logger.Info("booking deleted", logger.String("id", id))
	return nil
}

// UndoDelete puts the pending booking back at the head of the local items.
// It reports false when there is nothing to undo.
func (s *Store) UndoDelete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.undo.active() || s.state.PendingDelete == nil {
		return false
	}
	s.closeUndoLocked(ResolutionUndone)

	return s.applyLocked("delete.undo", func(st *State) bool {
		b := st.PendingDelete.Booking
		// Still visible somewhere (e.g. refetched meanwhile): nothing to re-insert.
		if indexOf(st.ServerItems, b.ID) < 0 && indexOf(st.LocalItems, b.ID) < 0 {
			st.LocalItems = prepend(b, st.LocalItems)
		}
		st.PendingDelete = nil
		st.Page = 1
		return true
	})
}

// ClearError dismisses the error indicator.
func (s *Store) ClearError() {
	s.update("error.clear", func(st *State) bool {
		if st.Error == "" {
			return false
		}
		st.Error = ""
		return true
	})
}

// fail ends a Load or Create: Loading is cleared and Error set.
func (s *Store) fail(op string, err error) {
	s.recordFailure(op, err, true)
}

func (s *Store) recordFailure(op string, err error, endLoading bool) {
	msg := err.Error()
	s.update(op, func(st *State) bool {
		if endLoading {
			st.Loading = false
		}
		st.Error = msg
		return true
	})
	s.logger.Warn("bookings remote call failed",
		logger.String("op", op),
		logger.Error(err))
}

// ─────────────────────────────────────────────────────────────────
// Undo window
// ─────────────────────────────────────────────────────────────────

// openUndoLocked supersedes the current window and starts a new one for b.
func (s *Store) openUndoLocked(b domain.Booking) *PendingDelete {
	if s.undo.active() {
		s.closeUndoLocked(ResolutionSuperseded)
	}

	s.undoGen++
	gen := s.undoGen
	w := &undoWindow{
		gen:       gen,
		booking:   b,
		expiresAt: s.timeNow().Add(s.undoAfter),
	}
	w.timer = s.afterFunc(s.undoAfter, func() { s.expireUndo(gen) })
	s.undo = w

	return &PendingDelete{Booking: b, ExpiresAt: w.expiresAt}
}

func (s *Store) closeUndoLocked(r Resolution) {
	if s.undo.resolve(r) {
		s.logger.Debug("undo window closed",
			logger.String("id", s.undo.booking.ID),
			logger.String("resolution", string(r)))
	}
}

// expireUndo runs on the timer. A window that was already resolved, or
// replaced by a newer one, is left alone.
func (s *Store) expireUndo(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undo == nil || s.undo.gen != gen || !s.undo.active() {
		return
	}
	s.closeUndoLocked(ResolutionExpired)
	s.applyLocked("delete.expired", func(st *State) bool {
		if st.PendingDelete == nil {
			return false
		}
		st.PendingDelete = nil
		return true
	})
}

// UndoResolution reports how the most recent undo window closed, or
// ResolutionNone while it is still open or none was ever opened.
func (s *Store) UndoResolution() Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.undo == nil {
		return ResolutionNone
	}
	return s.undo.resolution
}

// ─────────────────────────────────────────────────────────────────
// List settings
// ─────────────────────────────────────────────────────────────────

// Settings is a partial change of list settings. Nil fields are left as is.
type Settings struct {
	Query    *string
	Filter   *domain.Filter
	SortKey  *domain.SortKey
	PageSize *int
}

func (p Settings) empty() bool {
	return p.Query == nil && p.Filter == nil && p.SortKey == nil && p.PageSize == nil
}

func (p Settings) validate() error {
	if p.Filter != nil && !p.Filter.Valid() {
		return fmt.Errorf("unknown filter: %q", *p.Filter)
	}
	if p.SortKey != nil && !p.SortKey.Valid() {
		return fmt.Errorf("unknown sort key: %q", *p.SortKey)
	}
	if p.PageSize != nil && *p.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", *p.PageSize)
	}
	return nil
}

// ApplySettings validates every field of p, then commits them together in
// one snapshot, returns to the first page and persists the preference
// subset once. An invalid field rejects the whole change.
//
// SortKey selects that key in descending order, or flips the direction when
// it is already selected.
func (s *Store) ApplySettings(ctx context.Context, p Settings) error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.empty() {
		return nil
	}

	var saved prefs.Prefs
	s.update("settings", func(st *State) bool {
		if p.Query != nil {
			st.Query = *p.Query
		}
		if p.Filter != nil {
			st.Filter = *p.Filter
		}
		if p.SortKey != nil {
			if st.SortKey == *p.SortKey {
				st.SortDir = st.SortDir.Toggle()
			} else {
				st.SortKey = *p.SortKey
				st.SortDir = domain.SortDesc
			}
		}
		if p.PageSize != nil {
			st.PageSize = *p.PageSize
		}
		st.Page = 1
		saved = st.Prefs()
		return true
	})

	if s.prefs == nil {
		return nil
	}
	if err := s.prefs.Save(ctx, saved); err != nil {
		s.logger.Warn("failed to persist ui preferences", logger.Error(err))
	}
	return nil
}

// SetQuery sets the search text and returns to the first page.
func (s *Store) SetQuery(ctx context.Context, query string) {
	_ = s.ApplySettings(ctx, Settings{Query: &query})
}

// SetFilter sets the status filter and returns to the first page.
func (s *Store) SetFilter(ctx context.Context, f domain.Filter) error {
	return s.ApplySettings(ctx, Settings{Filter: &f})
}

// SetSort selects key in descending order, or flips the direction when key
// is already selected.
func (s *Store) SetSort(ctx context.Context, key domain.SortKey) error {
	return s.ApplySettings(ctx, Settings{SortKey: &key})
}

// SetPageSize sets the number of bookings per page.
func (s *Store) SetPageSize(ctx context.Context, n int) error {
	return s.ApplySettings(ctx, Settings{PageSize: &n})
}

// NextPage advances one page, stopping at the last page.
func (s *Store) NextPage() {
	s.update("page.next", func(st *State) bool {
		last := TotalPages(*st)
		next := min(st.Page+1, last)
		if next == st.Page {
			return false
		}
		st.Page = next
		return true
	})
}

// PrevPage goes back one page, stopping at the first page.
func (s *Store) PrevPage() {
	s.update("page.prev", func(st *State) bool {
		prev := max(st.Page-1, 1)
		if prev == st.Page {
			return false
		}
		st.Page = prev
		return true
	})
}
