// Package app wires configuration, adapters, and routes into the HTTP server.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/voiceflow-labs/interview-prep-api/internal/adapter/httpserver"
	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/observability"
	"github.com/voiceflow-labs/interview-prep-api/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming
// spaces. An empty input means allow all.
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(60 * time.Second))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Mutating endpoints get per-IP limiting; completion-backed ones are
	// additionally capped by the shared generation bucket inside the handlers.
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.Post("/v1/resume/analyze", srv.AnalyzeResumeHandler())
		wr.Post("/v1/mcq/generate", srv.GenerateMCQHandler())
		wr.Post("/v1/mcq/validate", srv.ValidateAnswerHandler())
		wr.Post("/v1/interview", srv.StartInterviewHandler())
		wr.Post("/v1/interview/questions", srv.InterviewQuestionsHandler())
		wr.Post("/v1/interview/analyze", srv.InterviewAnalyzeHandler())
		wr.Post("/v1/interview/{id}/complete", srv.CompleteInterviewHandler())
	})
	// Read-only endpoints
	r.Get("/v1/mcq/questions", srv.ListQuestionsHandler())

	// Health and metrics
	r.Get("/healthz", srv.HealthzHandler())
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })

	return httpserver.SecurityHeaders(r)
}
