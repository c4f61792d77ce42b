package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/bookingdash/internal/bookings"
	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/dto"
)

// PatchView changes list settings in a single commit. A bad field rejects
// the whole request.
func PatchView(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p dto.ViewPatch
		if err := decodeBody(w, r, &p); err != nil {
			writeError(w, d, http.StatusBadRequest, "invalid request body")
			return
		}

		settings := bookings.Settings{Query: p.Query, PageSize: p.PageSize}
		if p.Filter != nil {
			filter, err := domain.ParseFilter(*p.Filter)
			if err != nil {
				writeError(w, d, http.StatusBadRequest, err.Error())
				return
			}
			settings.Filter = &filter
		}
		if p.SortKey != nil {
			key, err := domain.ParseSortKey(*p.SortKey)
			if err != nil {
				writeError(w, d, http.StatusBadRequest, err.Error())
				return
			}
			settings.SortKey = &key
		}
		if p.PageSize != nil && *p.PageSize < 1 {
			writeError(w, d, http.StatusBadRequest, "pageSize must be at least 1")
			return
		}

		if err := d.Store.ApplySettings(detached(r), settings); err != nil {
			writeError(w, d, http.StatusBadRequest, err.Error())
			return
		}
		writeView(w, d, http.StatusOK)
	}
}

// NextPage moves to the next page.
func NextPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Store.NextPage()
		writeView(w, d, http.StatusOK)
	}
}

// PrevPage moves to the previous page.
func PrevPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Store.PrevPage()
		writeView(w, d, http.StatusOK)
	}
}
