// Command server starts the interview prep API HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/ai/gemini"
	httpserver "github.com/voiceflow-labs/interview-prep-api/internal/adapter/httpserver"
	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/observability"
	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/repo/postgres"
	"github.com/voiceflow-labs/interview-prep-api/internal/app"
	"github.com/voiceflow-labs/interview-prep-api/internal/config"
	"github.com/voiceflow-labs/interview-prep-api/internal/interview"
	"github.com/voiceflow-labs/interview-prep-api/internal/match"
	"github.com/voiceflow-labs/interview-prep-api/internal/mcq"
	"github.com/voiceflow-labs/interview-prep-api/internal/resume"
	"github.com/voiceflow-labs/interview-prep-api/internal/service/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid redis url", slog.Any("error", err))
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer func() { _ = rdb.Close() }()

	// Repositories
	questionRepo := postgres.NewQuestionRepo(pool)
	interviewRepo := postgres.NewInterviewRepo(pool)

	// Text classification tables; candidate name patterns come from config so
	// deployments can redact their own users without a rebuild.
	patterns := match.DefaultPersonalPatterns()
	patterns.Names = match.CompileNamePatterns(cfg.NamePatterns)
	matcher := match.New(match.TechTokens, patterns)

	// Domain services
	aiClient := gemini.New(cfg)
	sanitizer := resume.NewSanitizer(matcher)
	analyzer := resume.NewAnalyzer(resume.NewRegexExtractor())
	generator := mcq.NewGenerator(aiClient, matcher, sanitizer)
	interviews := interview.NewService(aiClient, interviewRepo)

	limiter := ratelimiter.NewRedisLuaLimiter(rdb, map[string]ratelimiter.BucketConfig{
		"generation": ratelimiter.NewBucketConfigFromPerMinute(cfg.GenerationPerMin),
	})

	dbCheck, redisCheck, aiCheck := app.BuildReadinessChecks(pool, rdb, aiClient)

	srv := &httpserver.Server{
		Cfg:        cfg,
		Analyzer:   analyzer,
		Generator:  generator,
		Interviews: interviews,
		Questions:  questionRepo,
		Limiter:    limiter,
		DBCheck:    dbCheck,
		RedisCheck: redisCheck,
		AICheck:    aiCheck,
	}

	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
