// httpserver — служебный HTTP harvester-а: /livez, /healthz, /metrics.
package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options — параметры сборки роутера.
type Options struct {
	Logger *slog.Logger
	// Gatherer — реестр метрик; nil -> prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Ready — флаг готовности (0 — не готов, 1 — готов).
	Ready *atomic.Int32
	// Ping — проверка зависимостей для /healthz; nil -> не проверяется.
	Ping func(ctx context.Context) error
	// Timeout — общий дедлайн запроса (по умолчанию 2s).
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и служебными маршрутами.
func NewRouter(opts Options) http.Handler {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}

	r := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	r.Use(
		Recover(),
		Logging(opts.Logger),
		Timeout(opts.Timeout),
	)

	r.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if opts.Ready != nil && opts.Ready.Load() != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		if opts.Ping != nil {
			if err := opts.Ping(req.Context()); err != nil {
				http.Error(w, "dependency unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	return r
}
