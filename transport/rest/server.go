package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-arena/internal/session"
)

type stats interface {
	Stats() session.Stats
}

// Start - starts the REST server with the health, stats and metrics
// endpoints.
func Start(port string, stats stats, registry *prometheus.Registry) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      newRouter(stats, registry),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func newRouter(stats stats, registry *prometheus.Registry) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/ping", pingHandler)
	router.Get("/stats", statsHandler(stats))
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return router
}

func statsHandler(stats stats) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats.Stats()); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}
