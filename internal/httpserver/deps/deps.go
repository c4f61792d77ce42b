package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookingdash/internal/bookings"
	"github.com/MrSnakeDoc/bookingdash/internal/live"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// Refresher reports on background reloads.
type Refresher interface {
	LastRefresh() (time.Time, error)
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Store          *bookings.Store // dashboard state
	Hub            *live.Hub       // live feed, nil disables /api/live
	RedisClient    *redis.Client   // nil when preferences are kept in memory
	Refresher      Refresher       // optional, reported by /readyz
	ReloadTrigger  chan struct{}   // Channel to trigger a manual bookings reload
	RequestTimeout time.Duration   // per request, excluding the live feed
}
