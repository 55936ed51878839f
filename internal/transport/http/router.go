package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talentdesk/internal/platform/metrics"
	"talentdesk/internal/platform/middleware"
)

// Registrar is any handler that mounts routes on a chi router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the public surface: health and metrics stay open, every
// API route sits behind the standard middleware chain plus authentication.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, validator middleware.JWTValidator, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.Recovery(logger))
		api.Use(middleware.RequestID)
		api.Use(middleware.Logger(logger))
		api.Use(middleware.Timeout(30 * time.Second))
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.LatencyMiddleware(m))
		api.Use(middleware.RequireAuth(validator, logger))
		for _, h := range handlers {
			h.Register(api)
		}
	})

	return r
}
