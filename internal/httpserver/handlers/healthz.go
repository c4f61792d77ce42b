package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	StoreVersion  uint64  `json:"store_version"`
	LiveClients   int     `json:"live_clients"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthzResponse{
			Status:        "ok",
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			UptimeSeconds: time.Since(start).Seconds(),
		}
		if d.Store != nil {
			resp.StoreVersion = d.Store.View().Version
		}
		if d.Hub != nil {
			resp.LiveClients = d.Hub.ClientCount()
		}
		writeJSON(w, d, http.StatusOK, resp)
	}
}
