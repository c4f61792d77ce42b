package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/handlers"
)

func init() { Register(registerLive) }

// The live feed is long-lived and stays outside the request timeout.
func registerLive(r chi.Router, d deps.Deps) {
	if d.Hub == nil {
		return
	}
	r.Get("/api/live", handlers.Live(d))
}
