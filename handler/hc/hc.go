package hc

import (
	"net/http"
	"time"

	"yieldpool/core"
	"yieldpool/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle liveness on /, readiness on /ready
//
// The pool is ready once it can be loaded from the database.
func Handle(ver string, poolSrv core.IPoolService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Get("/", liveness(ver, time.Now()))
	r.Get("/ready", readiness(poolSrv))
	return r
}

func liveness(version string, since time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, render.H{
			"uptime":  time.Since(since).Truncate(time.Millisecond).String(),
			"version": version,
		})
	}
}

func readiness(poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := poolSrv.Pool(r.Context())
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, render.H{
			"pool":       pool.ID,
			"updated_at": pool.UpdatedAt,
		})
	}
}
