package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
)

// Registrar mounts a set of routes.
type Registrar func(r chi.Router, d deps.Deps)

type entry struct {
	reg   Registrar
	timed bool
}

var registry []entry

// Register adds routes that run without a request deadline (probes, live feed).
func Register(reg Registrar) {
	registry = append(registry, entry{reg: reg})
}

// RegisterTimed adds routes bounded by deps.RequestTimeout.
func RegisterTimed(reg Registrar) {
	registry = append(registry, entry{reg: reg, timed: true})
}

// RegisterAll mounts every registered route. Called once from NewRouter.
// Timed routes share one group carrying the timeout middleware.
func RegisterAll(r chi.Router, d deps.Deps) {
	var timed []Registrar
	for _, e := range registry {
		if e.timed {
			timed = append(timed, e.reg)
			continue
		}
		e.reg(r, d)
	}
	if len(timed) == 0 {
		return
	}

	r.Group(func(g chi.Router) {
		if d.RequestTimeout > 0 {
			g.Use(middleware.Timeout(d.RequestTimeout))
		}
		for _, reg := range timed {
			reg(g, d)
		}
	})
}
