package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Mode        string `json:"mode,omitempty"`
	LastRefresh string `json:"last_refresh,omitempty"`
	Error       string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz reports whether preferences storage is reachable. A failing remote
// booking API does not make the dashboard unready: it serves stale data and
// shows the error.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"prefs":    checkPrefs(r.Context(), d),
			"bookings": checkBookings(d),
		}

		status := http.StatusOK
		if !components["prefs"].OK {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d, status, readyzResponse{
			Ready:      status == http.StatusOK,
			Components: components,
		})
	}
}

func checkPrefs(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: true, Mode: "memory"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Mode: "redis", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "redis"}
}

func checkBookings(d deps.Deps) componentStatus {
	st := componentStatus{OK: true}
	if d.Refresher != nil {
		at, err := d.Refresher.LastRefresh()
		st.LastRefresh = "never"
		if !at.IsZero() {
			st.LastRefresh = at.UTC().Format(time.RFC3339)
		}
		if err != nil {
			st.OK = false
			st.Error = err.Error()
		}
	}
	return st
}
