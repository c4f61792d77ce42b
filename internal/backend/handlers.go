package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/mw"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

type deleteResponse struct {
	OK bool `json:"ok"`
}

// Router serves the booking REST API backed by repo.
func Router(repo *Repository, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(mw.Log(log))

	r.Get("/bookings", listBookings(repo))
	r.Post("/bookings", createBooking(repo, log))
	r.Get("/bookings/{id}", getBooking(repo))
	r.Patch("/bookings/{id}/confirm", confirmBooking(repo, log))
	r.Delete("/bookings/{id}", deleteBooking(repo, log))

	return r
}

func listBookings(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, repo.List())
	}
}

func getBooking(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := repo.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func createBooking(repo *Repository, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d domain.Draft
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		b, err := repo.Create(d)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Fields: verr.Fields})
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to create booking")
			return
		}

		log.Info("booking created", logger.String("id", b.ID))
		writeJSON(w, http.StatusCreated, b)
	}
}

func confirmBooking(repo *Repository, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		b, err := repo.Confirm(id)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Info("booking confirmed", logger.String("id", id))
		writeJSON(w, http.StatusOK, b)
	}
}

func deleteBooking(repo *Repository, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := repo.Delete(id); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Info("booking deleted", logger.String("id", id))
		writeJSON(w, http.StatusOK, deleteResponse{OK: true})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
