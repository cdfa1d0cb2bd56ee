// Package metrics holds the prometheus instruments for the tournament
// service. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "swiss"

type Recorder struct {
	registry *prometheus.Registry

	playersRegistered prometheus.Counter
	matchesReported   prometheus.Counter
	pairingsGenerated prometheus.Counter
	pairingFailures   *prometheus.CounterVec
	exportsUploaded   *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

func NewRecorder(registry *prometheus.Registry) *Recorder {
	r := &Recorder{
		registry: registry,
		playersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_registered_total",
			Help:      "Players registered.",
		}),
		matchesReported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_reported_total",
			Help:      "Match results recorded.",
		}),
		pairingsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairings_generated_total",
			Help:      "Pairing lists produced.",
		}),
		pairingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairing_failures_total",
			Help:      "Pairing requests that failed, by reason.",
		}, []string{"reason"}),
		exportsUploaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_uploaded_total",
			Help:      "Standings exports uploaded, by format.",
		}, []string{"format"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		r.playersRegistered,
		r.matchesReported,
		r.pairingsGenerated,
		r.pairingFailures,
		r.exportsUploaded,
		r.requestDuration,
	)
	return r
}

func (r *Recorder) PlayerRegistered() {
	if r == nil {
		return
	}
	r.playersRegistered.Inc()
}

func (r *Recorder) MatchReported() {
	if r == nil {
		return
	}
	r.matchesReported.Inc()
}

func (r *Recorder) PairingsGenerated() {
	if r == nil {
		return
	}
	r.pairingsGenerated.Inc()
}

func (r *Recorder) PairingFailed(reason string) {
	if r == nil {
		return
	}
	r.pairingFailures.WithLabelValues(reason).Inc()
}

func (r *Recorder) ExportUploaded(format string) {
	if r == nil {
		return
	}
	r.exportsUploaded.WithLabelValues(format).Inc()
}

// Handler serves the recorder's registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware observes request latency labelled with the matched chi route
// pattern, so ids in paths do not explode cardinality.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.requestDuration.WithLabelValues(req.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
