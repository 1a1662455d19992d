// Package metrics exports gameplay and HTTP metrics in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

const namespace = "tower"

// Registry owns every collector of one process.
// A private registry keeps parallel tests and embedded servers apart.
type Registry struct {
	reg *prometheus.Registry

	placements   *prometheus.CounterVec
	games        prometheus.Counter
	scores       prometheus.Histogram
	gameDuration prometheus.Histogram
	sessions     prometheus.Gauge

	reqDuration *prometheus.HistogramVec
	reqInflight prometheus.Gauge
	reqErrors   *prometheus.CounterVec
}

// New creates a registry with gameplay, HTTP and Go runtime collectors.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		placements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placements_total",
			Help:      "Block placements by outcome.",
		}, []string{"outcome"}),
		games: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Finished rounds.",
		}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_score",
			Help:      "Final score of finished rounds.",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20, 30, 50, 75, 100},
		}),
		gameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_duration_seconds",
			Help:      "Length of finished rounds.",
			Buckets:   []float64{5, 10, 30, 60, 120, 300, 600, 1800},
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Connected SSH sessions.",
		}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests being served.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_request_errors_total",
			Help:      "HTTP requests that ended with a 4xx or 5xx status.",
		}, []string{"method", "path", "status"}),
	}

	r.reg.MustRegister(
		r.placements, r.games, r.scores, r.gameDuration, r.sessions,
		r.reqDuration, r.reqInflight, r.reqErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// ObservePlacement counts one placement.
func (r *Registry) ObservePlacement(o tower.Outcome) {
	r.placements.WithLabelValues(o.String()).Inc()
}

// ObserveGameOver records a finished round.
func (r *Registry) ObserveGameOver(score int, d time.Duration) {
	r.games.Inc()
	r.scores.Observe(float64(score))
	r.gameDuration.Observe(d.Seconds())
}

// SessionStarted and SessionEnded track connected SSH players.
func (r *Registry) SessionStarted() { r.sessions.Inc() }
func (r *Registry) SessionEnded()   { r.sessions.Dec() }

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// GinMiddleware records latency and error counts of every request.
func (r *Registry) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		r.reqInflight.Inc()
		c.Next()
		r.reqInflight.Dec()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		r.reqDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			r.reqErrors.WithLabelValues(method, path, status).Inc()
		}
	}
}

// Mount adds GET /metrics to a gin router.
func (r *Registry) Mount(router gin.IRouter) {
	router.GET("/metrics", gin.WrapH(r.Handler()))
}
