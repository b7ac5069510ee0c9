// Package mcq implements resume-grounded MCQ generation: prompt construction,
// completion parsing, the local acceptance filter, and the bounded
// retry-with-stricter-prompt loop. The external generator is not fully
// controllable, so its output is treated as untrusted and filtered locally.
package mcq

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/observability"
	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
	"github.com/voiceflow-labs/interview-prep-api/internal/match"
	"github.com/voiceflow-labs/interview-prep-api/internal/resume"
)

const maxAttempts = 2

// Generator produces validated MCQ items from resume text via the completion
// port. Safe for concurrent use; it holds no per-request state.
type Generator struct {
	client    domain.CompletionClient
	matcher   *match.Matcher
	sanitizer *resume.Sanitizer
	opts      domain.CompletionOptions
}

// NewGenerator wires a Generator from its collaborators.
func NewGenerator(client domain.CompletionClient, m *match.Matcher, s *resume.Sanitizer) *Generator {
	return &Generator{
		client:    client,
		matcher:   m,
		sanitizer: s,
		opts:      domain.CompletionOptions{Temperature: 0.2, MaxOutputTokens: 4096},
	}
}

// Generate returns up to questionCount filtered questions for the resume.
// Protocol: sanitize, over-ask, complete, parse, filter; one stricter retry on
// a malformed response or a filtered count below questionCount; then
// domain.ErrInsufficientContent if nothing survived. Never returns more than
// questionCount items.
func (g *Generator) Generate(ctx domain.Context, resumeContent string, questionCount int) ([]domain.MCQItem, error) {
	if resumeContent == "" {
		return nil, fmt.Errorf("%w: resume content required", domain.ErrInvalidArgument)
	}
	if questionCount <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive", domain.ErrInvalidArgument)
	}

	sanitized := g.sanitizer.Sanitize(resumeContent)
	// Over-ask so the acceptance filter has room to reject.
	target := max(questionCount*2, questionCount+6)

	attempt := func(ctx domain.Context, strict bool) ([]domain.MCQItem, error) {
		text, err := g.client.Complete(ctx, BuildPrompt(sanitized, target, strict), g.opts)
		if err != nil {
			return nil, fmt.Errorf("op=mcq.complete: %w", err)
		}
		items, err := ExtractJSONArray(text)
		if err != nil {
			return nil, err
		}
		return g.Filter(items), nil
	}

	items, err := retryStricter(ctx, maxAttempts, questionCount, attempt)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no technical questions generated after filtering; resume needs clear project/stack details", domain.ErrInsufficientContent)
	}
	if len(items) > questionCount {
		items = items[:questionCount]
	}
	observability.QuestionsGeneratedTotal.Add(float64(len(items)))
	return items, nil
}

// Filter keeps only items whose question text is technical and not
// personal/HR-flavored, preserving order.
func (g *Generator) Filter(items []domain.MCQItem) []domain.MCQItem {
	kept := make([]domain.MCQItem, 0, len(items))
	for _, q := range items {
		if g.matcher.LooksPersonalOrHR(q.Question) {
			continue
		}
		if !g.matcher.ContainsTechToken(q.Question) {
			continue
		}
		kept = append(kept, q)
	}
	observability.QuestionsFilteredTotal.Add(float64(len(items) - len(kept)))
	return kept
}

// retryStricter runs attempt up to maxAttempts times, passing strict=true
// from the second attempt on. A malformed response counts the same as a thin
// batch: one stricter retry, since tighter instructions may fix either. An
// upstream call failure is surfaced immediately and never retried here, and a
// retry result replaces the first batch rather than merging with it.
func retryStricter(ctx domain.Context, maxAttempts, want int, attempt func(domain.Context, bool) ([]domain.MCQItem, error)) ([]domain.MCQItem, error) {
	var (
		items []domain.MCQItem
		err   error
	)
	for i := 0; i < maxAttempts; i++ {
		strict := i > 0
		if strict {
			observability.GenerationRetriesTotal.Inc()
		}
		items, err = attempt(ctx, strict)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedResponse) && i < maxAttempts-1 {
				slog.Warn("model response unparsable, retrying with strict prompt", slog.Int("attempt", i+1))
				continue
			}
			return nil, err
		}
		if len(items) >= want {
			return items, nil
		}
		slog.Info("filtered batch below target",
			slog.Int("attempt", i+1),
			slog.Int("kept", len(items)),
			slog.Int("want", want))
	}
	return items, nil
}
