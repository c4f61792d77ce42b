package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/dto"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// Store operations outlive the request: a client going away must not abort a
// remote call half way. The api client's own timeout bounds them.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// ListBookings serves the list page.
func ListBookings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeView(w, d, http.StatusOK)
	}
}

// CreateBooking validates the draft, then creates it remotely. Remote
// failures are reported in the view's error field.
func CreateBooking(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft domain.Draft
		if err := decodeBody(w, r, &draft); err != nil {
			writeError(w, d, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := draft.Validate(); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, d, http.StatusBadRequest, dto.Error{Error: "invalid booking", Fields: verr.Fields})
				return
			}
			writeError(w, d, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := d.Store.Create(detached(r), draft.Normalized()); err != nil {
			writeView(w, d, http.StatusOK)
			return
		}
		writeView(w, d, http.StatusCreated)
	}
}

// ConfirmBooking confirms a booking optimistically.
func ConfirmBooking(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = d.Store.Confirm(detached(r), chi.URLParam(r, "id"))
		writeView(w, d, http.StatusOK)
	}
}

// DeleteBooking deletes a booking optimistically and opens the undo window.
func DeleteBooking(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = d.Store.Delete(detached(r), chi.URLParam(r, "id"))
		writeView(w, d, http.StatusOK)
	}
}

// UndoDelete restores the pending deleted booking. 409 when the undo window
// is already closed.
func UndoDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Store.UndoDelete() {
			writeError(w, d, http.StatusConflict, "nothing to undo")
			return
		}
		writeView(w, d, http.StatusOK)
	}
}

// ClearError dismisses the error indicator.
func ClearError(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Store.ClearError()
		writeView(w, d, http.StatusOK)
	}
}

// Reload triggers a manual reload of bookings
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, d, http.StatusServiceUnavailable, "reload is not available")
			return
		}
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual bookings reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d, http.StatusAccepted, map[string]string{"status": "reload triggered"})
		default:
			d.Logger.Warn("bookings reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, d, http.StatusTooManyRequests, "reload already in progress")
		}
	}
}
