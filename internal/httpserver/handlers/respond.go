package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/dto"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, d deps.Deps, status int, msg string) {
	writeJSON(w, d, status, dto.Error{Error: msg})
}

// writeView answers with the store's current view.
func writeView(w http.ResponseWriter, d deps.Deps, status int) {
	writeJSON(w, d, status, dto.FromView(d.Store.View()))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
