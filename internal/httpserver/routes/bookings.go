package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/handlers"
)

func init() { RegisterTimed(registerBookings) }

func registerBookings(r chi.Router, d deps.Deps) {
	r.Get("/api/bookings", handlers.ListBookings(d))
	r.Post("/api/bookings", handlers.CreateBooking(d))
	r.Post("/api/bookings/undo", handlers.UndoDelete(d))
	r.Post("/api/bookings/reload", handlers.Reload(d))
	r.Post("/api/bookings/{id}/confirm", handlers.ConfirmBooking(d))
	r.Delete("/api/bookings/{id}", handlers.DeleteBooking(d))
	r.Delete("/api/error", handlers.ClearError(d))
}
