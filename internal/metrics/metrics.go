package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roleplay"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	})

	groupRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "group_requests_total",
		Help:      "Group join request transitions by outcome",
	}, []string{"outcome"})

	passwordResets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Password reset workflow events by outcome",
	}, []string{"outcome"})

	resetMails = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_mails_total",
		Help:      "Reset mail deliveries by result",
	}, []string{"result"})

	sweptTokens = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_swept_total",
		Help:      "Expired reset tokens removed by the sweeper",
	})
)

// GroupRequest counts a join request transition ("created", "accepted", "rejected").
func GroupRequest(outcome string) {
	groupRequests.WithLabelValues(outcome).Inc()
}

// PasswordReset counts a reset workflow event ("requested", "consumed", "expired").
func PasswordReset(outcome string) {
	passwordResets.WithLabelValues(outcome).Inc()
}

// ResetMail counts a reset mail delivery attempt ("sent", "failed", "fallback").
func ResetMail(result string) {
	resetMails.WithLabelValues(result).Inc()
}

func TokensSwept(n int64) {
	if n > 0 {
		sweptTokens.Add(float64(n))
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Middleware records request metrics labelled by the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		labels := prometheus.Labels{
			"method": r.Method,
			"route":  routeLabel(r),
			"status": strconv.Itoa(rec.status),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
