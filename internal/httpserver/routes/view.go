package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/handlers"
)

func init() { RegisterTimed(registerView) }

func registerView(r chi.Router, d deps.Deps) {
	r.Patch("/api/view", handlers.PatchView(d))
	r.Post("/api/view/next", handlers.NextPage(d))
	r.Post("/api/view/prev", handlers.PrevPage(d))
}
