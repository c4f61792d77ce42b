package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// Loader is what the refresher reloads. *bookings.Store satisfies it.
type Loader interface {
	Load(ctx context.Context) error
}

// Refresher reloads bookings periodically and on manual trigger.
type Refresher struct {
	store         Loader
	logger        logger.Logger
	interval      time.Duration // 0 disables the ticker
	stopCh        chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
	manualTrigger chan struct{}
	started       bool

	mu          sync.Mutex
	lastRefresh time.Time
	lastErr     error
}

// NewRefresher creates a refresher. manualTrigger may be nil.
func NewRefresher(store Loader, log logger.Logger, interval time.Duration, manualTrigger chan struct{}) *Refresher {
	return &Refresher{
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once, then keeps refreshing in the background until Stop or
// ctx is done. A failed first load is not fatal: the store keeps the error
// for the dashboard to show.
func (rf *Refresher) Start(ctx context.Context) {
	if err := rf.Refresh(ctx); err != nil {
		rf.logger.Warn("initial bookings load failed", logger.Error(err))
	}

	rf.mu.Lock()
	rf.started = true
	rf.mu.Unlock()

	var tick <-chan time.Time
	var ticker *time.Ticker
	if rf.interval > 0 {
		ticker = time.NewTicker(rf.interval)
		tick = ticker.C
	}

	go func() {
		defer close(rf.done)
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				rf.refreshLogged(ctx)
			case <-rf.manualTrigger:
				rf.logger.Info("manual reload triggered")
				rf.refreshLogged(ctx)
			case <-rf.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the background loop and waits for it to exit.
func (rf *Refresher) Stop() {
	rf.mu.Lock()
	started := rf.started
	rf.mu.Unlock()
	if !started {
		return
	}
	rf.stopOnce.Do(func() { close(rf.stopCh) })
	<-rf.done
}

// Refresh reloads the store once.
func (rf *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()
	err := rf.store.Load(ctx)

	rf.mu.Lock()
	rf.lastRefresh = time.Now()
	rf.lastErr = err
	rf.mu.Unlock()

	if err == nil {
		rf.logger.Debug("bookings refreshed", logger.Duration("duration", time.Since(start)))
	}
	return err
}

// LastRefresh returns when the last refresh finished and its error.
func (rf *Refresher) LastRefresh() (time.Time, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.lastRefresh, rf.lastErr
}

func (rf *Refresher) refreshLogged(ctx context.Context) {
	if err := rf.Refresh(ctx); err != nil {
		rf.logger.Warn("failed to refresh bookings", logger.Error(err))
	}
}
