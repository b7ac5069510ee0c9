package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRateLimited         = errors.New("rate limited")
	ErrUpstreamFailure     = errors.New("upstream call failure")
	ErrMalformedResponse   = errors.New("malformed model response")
	ErrInsufficientContent = errors.New("insufficient content")
	ErrInternal            = errors.New("internal error")
)

// MCQItem is one multiple-choice question produced by the completion
// capability. CorrectAnswer is one of A, B, C, D.
type MCQItem struct {
	ID            string `json:"id,omitempty"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Category      string `json:"category,omitempty"`
}

// Evidence is a short snippet backing a score component.
type Evidence struct {
	Type    string `json:"type"`
	Snippet string `json:"snippet"`
}

// Suggestions carries the three-tier advice block of an analysis.
type Suggestions struct {
	PrioritizedNextSteps []string `json:"prioritized_next_steps"`
	QuickEdits           []string `json:"quick_edits"`
	LongerTerm           []string `json:"longer_term"`
}

// RecommendedSnippets holds role-interpolated resume templates.
type RecommendedSnippets struct {
	ProfessionalSummary string `json:"professional_summary"`
	ProjectBullet       string `json:"project_bullet"`
}

// ResumeAnalysis is the full scoring output for one resume.
// Invariants: OverallScore in [0,100], Confidence in [20,95].
type ResumeAnalysis struct {
	OverallScore        int                 `json:"overall_score"`
	Confidence          int                 `json:"confidence"`
	Strengths           []string            `json:"strengths"`
	Weaknesses          []string            `json:"weaknesses"`
	Evidence            []Evidence          `json:"evidence"`
	AIFeedback          string              `json:"ai_feedback"`
	Suggestions         Suggestions         `json:"suggestions"`
	RecommendedSnippets RecommendedSnippets `json:"recommended_snippets"`
}

// ExtractedEntities is the intermediate extractor output consumed by the
// scorer. Lists keep insertion order and may be empty.
type ExtractedEntities struct {
	Projects  []string `json:"projects"`
	Companies []string `json:"companies"`
	Skills    []string `json:"skills"`
}

// InterviewQuestion is a generated voice-interview question.
type InterviewQuestion struct {
	Question   string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// QuestionFeedback is per-question feedback within an interview analysis.
type QuestionFeedback struct {
	Question        string `json:"question"`
	ResponseQuality string `json:"response_quality"`
	Feedback        string `json:"feedback"`
}

// InterviewAnalysis is the structured model feedback for a finished interview.
type InterviewAnalysis struct {
	OverallScore       int                `json:"overall_score"`
	TechnicalScore     int                `json:"technical_score"`
	CommunicationScore int                `json:"communication_score"`
	SentimentScore     int                `json:"sentiment_score"`
	Strengths          []string           `json:"strengths"`
	Improvements       []string           `json:"improvements"`
	DetailedFeedback   string             `json:"detailed_feedback"`
	QuestionAnalysis   []QuestionFeedback `json:"question_analysis"`
}

// InterviewStatus enumerates interview lifecycle states.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
)

// Interview is a persisted voice-interview session.
type Interview struct {
	ID         string
	Role       string
	Status     InterviewStatus
	Transcript string
	Responses  []byte // raw JSON array as received from the client
	Analysis   InterviewAnalysis
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AnswerCheck is the server-side validation result for a practice answer.
type AnswerCheck struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// CompletionOptions tune a single completion call.
type CompletionOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// CompletionClient (port)
// Complete submits a prompt to the external generative-text capability and
// returns the raw completion text. Implementations must honor ctx deadlines.
type CompletionClient interface {
	Complete(ctx Context, prompt string, opts CompletionOptions) (string, error)
}

// Repositories (ports)

type QuestionRepository interface {
	// SaveBatch persists generated questions under a category and returns ids.
	SaveBatch(ctx Context, category string, items []MCQItem) ([]string, error)
	// ListSafe returns questions with CorrectAnswer stripped.
	ListSafe(ctx Context, category string, limit int) ([]MCQItem, error)
	// ValidateAnswer checks a submitted answer without ever shipping the
	// correct answer to the client ahead of time.
	ValidateAnswer(ctx Context, questionID, userAnswer string) (AnswerCheck, error)
}

type InterviewRepository interface {
	Create(ctx Context, iv Interview) (string, error)
	Get(ctx Context, id string) (Interview, error)
	Complete(ctx Context, id, transcript string, responses []byte, analysis InterviewAnalysis) error
}

// Context is an alias so the domain package stays decoupled from transport
// packages; adapters and services pass context.Context through.
type Context = context.Context
