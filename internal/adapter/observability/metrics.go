package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and operation",
		},
		[]string{"provider", "operation"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	QuestionsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mcq_questions_generated_total",
			Help: "Total MCQ items returned to callers after filtering",
		},
	)
	QuestionsFilteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mcq_questions_filtered_total",
			Help: "Total MCQ items rejected by the personal/technical filter",
		},
	)
	GenerationRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mcq_generation_retries_total",
			Help: "Total strict-prompt retries during MCQ generation",
		},
	)

	// Resume score distribution helps spot drift in the heuristic model.
	ResumeScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_overall_score",
			Help:    "Distribution of resume overall_score ([0,100])",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

// InitMetrics registers all collectors once per process.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(QuestionsGeneratedTotal)
	prometheus.MustRegister(QuestionsFilteredTotal)
	prometheus.MustRegister(GenerationRetriesTotal)
	prometheus.MustRegister(ResumeScoreHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveResumeScore records the resulting score from a completed analysis.
func ObserveResumeScore(score int) {
	if score >= 0 && score <= 100 {
		ResumeScoreHistogram.Observe(float64(score))
	}
}
