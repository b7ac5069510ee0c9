// Package gemini implements the completion port against the Google
// generative-language HTTP API.
package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/observability"
	"github.com/voiceflow-labs/interview-prep-api/internal/config"
	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
)

// Client implements domain.CompletionClient. The API key is injected via
// config and sent as a request header; it is never logged and never appears
// in a URL.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a Client with an explicit per-call timeout so a hung
// provider call fails the request instead of blocking it forever. The
// transport is otelhttp-wrapped so provider calls join the request trace.
func New(cfg config.Config) *Client {
	transport := otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("Gemini %s %s", r.Method, r.URL.Host)
		}),
	)
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.GeminiTimeout,
			Transport: transport,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) getBackoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	return expo
}

// Complete calls the generateContent endpoint and returns the first
// candidate's text. 429 and 5xx responses are retried with exponential
// backoff; 4xx client errors are permanent.
func (c *Client) Complete(ctx domain.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	if c.cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY missing", domain.ErrInvalidArgument)
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		Config:   genConfig{Temperature: opts.Temperature, MaxOutputTokens: opts.MaxOutputTokens},
	}
	b, _ := json.Marshal(body)
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.GeminiBaseURL, c.cfg.GeminiModel)

	var out generateResponse
	op := func() error {
		start := time.Now()
		// Rebuild the request each attempt to avoid reusing consumed bodies.
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("X-Goog-Api-Key", c.cfg.GeminiAPIKey)
		resp, err := c.hc.Do(r)
		observability.AIRequestsTotal.WithLabelValues("gemini", "generate").Inc()
		observability.AIRequestDuration.WithLabelValues("gemini", "generate").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			slog.Error("failed to read response body", slog.String("provider", "gemini"), slog.Any("error", err))
			return err
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("ai provider rate limited", slog.String("provider", "gemini"), slog.Int("status", resp.StatusCode))
			return fmt.Errorf("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			slog.Warn("ai provider 4xx",
				slog.String("provider", "gemini"),
				slog.Int("status", resp.StatusCode),
				slog.String("model", c.cfg.GeminiModel),
				slog.String("body", snippet(bodyBytes, 512)))
			return backoff.Permanent(fmt.Errorf("generate status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("ai provider non-2xx",
				slog.String("provider", "gemini"),
				slog.Int("status", resp.StatusCode),
				slog.String("model", c.cfg.GeminiModel),
				slog.String("body", snippet(bodyBytes, 512)))
			return fmt.Errorf("generate status %d", resp.StatusCode)
		}
		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			slog.Error("ai provider decode error", slog.String("provider", "gemini"), slog.Any("error", err))
			return err
		}
		return nil
	}

	bo := backoff.WithContext(c.getBackoffConfig(), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return "", fmt.Errorf("%w: gemini generate: %v", domain.ErrUpstreamFailure, err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		slog.Error("gemini returned empty candidates", slog.String("model", c.cfg.GeminiModel))
		return "", fmt.Errorf("%w: empty response text", domain.ErrMalformedResponse)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// Healthcheck verifies the configured model is reachable.
func (c *Client) Healthcheck(ctx domain.Context) error {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/models/%s", c.cfg.GeminiBaseURL, c.cfg.GeminiModel), nil)
	if err != nil {
		return err
	}
	r.Header.Set("X-Goog-Api-Key", c.cfg.GeminiAPIKey)
	resp, err := c.hc.Do(r)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gemini model check status %d", resp.StatusCode)
	}
	return nil
}

func snippet(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
