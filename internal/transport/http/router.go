package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	request "realty/pkg/platform/middleware/request"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries the cross-cutting pieces of the middleware stack.
type RouterConfig struct {
	Logger         *slog.Logger
	RequestMetrics *request.Metrics
	Gatherer       prometheus.Gatherer
	MaxBodyBytes   int64
	Timeout        time.Duration
}

// NewRouter wires the middleware stack, /metrics and every registrar.
// Health routes should be passed as a registrar as well.
func NewRouter(cfg RouterConfig, registrars ...Registrar) http.Handler {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.ClientMetadata)
	r.Use(request.Logger(cfg.Logger))
	if cfg.RequestMetrics != nil {
		r.Use(request.LatencyMiddleware(cfg.RequestMetrics))
	}

	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(cfg.Timeout))
		if cfg.MaxBodyBytes > 0 {
			r.Use(request.BodyLimit(cfg.MaxBodyBytes))
		}
		r.Use(request.RequireContentType("application/json", "multipart/form-data"))
		for _, reg := range registrars {
			reg.Register(r)
		}
	})

	return r
}
