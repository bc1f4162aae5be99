package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP instrumentation for the API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics registers the HTTP collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels:
		//   - route: mux path template, e.g. "/api/playlist/{id}"
		//   - method, status
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracklist_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"route", "method", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracklist_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tracklist_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		}),
	}
}

// Middleware records request counts and latencies. It must be installed with
// mux.Router.Use so that the matched route is available.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		rw := wrap(w)
		next.ServeHTTP(rw, r)

		route := routeTemplate(r)
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
