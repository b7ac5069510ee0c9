package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/observability"
	"github.com/voiceflow-labs/interview-prep-api/internal/config"
	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
	"github.com/voiceflow-labs/interview-prep-api/internal/service/ratelimiter"
)

// generationBucket is the shared token bucket key for completion-backed
// endpoints across all replicas.
const generationBucket = "generation"

// ResumeAnalyzer scores raw resume text.
type ResumeAnalyzer interface {
	Analyze(resumeContent, targetRole string) domain.ResumeAnalysis
}

// MCQGenerator produces filtered practice questions from a resume.
type MCQGenerator interface {
	Generate(ctx domain.Context, resumeContent string, questionCount int) ([]domain.MCQItem, error)
}

// InterviewService covers interview question generation, transcript analysis,
// and session lifecycle.
type InterviewService interface {
	GenerateQuestions(ctx domain.Context, role string, interests []string) ([]domain.InterviewQuestion, error)
	AnalyzeResponses(ctx domain.Context, transcript string, responses json.RawMessage) (domain.InterviewAnalysis, error)
	Start(ctx domain.Context, role string) (string, error)
	Complete(ctx domain.Context, id, transcript string, responses json.RawMessage) (domain.InterviewAnalysis, error)
}

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Analyzer   ResumeAnalyzer
	Generator  MCQGenerator
	Interviews InterviewService
	Questions  domain.QuestionRepository
	Limiter    ratelimiter.Limiter
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
	AICheck    func(ctx context.Context) error
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

func decodeAndValidate(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if err := getValidator().Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

// allowGeneration consumes a token from the shared generation bucket and
// writes the 429 response itself when exhausted.
func (s *Server) allowGeneration(w http.ResponseWriter, r *http.Request) bool {
	if s.Limiter == nil {
		return true
	}
	allowed, retryAfter, err := s.Limiter.Allow(r.Context(), generationBucket, 1)
	if err != nil {
		// Fail open; the limiter already logged the cause.
		return true
	}
	if !allowed {
		secs := int(retryAfter.Round(time.Second).Seconds())
		if secs < 1 {
			secs = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(secs))
		writeError(w, r, fmt.Errorf("%w: generation budget exhausted", domain.ErrRateLimited), map[string]int{"retry_after_seconds": secs})
		return false
	}
	return true
}

type analyzeResumeRequest struct {
	ResumeContent string `json:"resume_content" validate:"required,min=1"`
	TargetRole    string `json:"target_role" validate:"required,min=1"`
}

// AnalyzeResumeHandler scores resume text deterministically.
func (s *Server) AnalyzeResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeResumeRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		analysis := s.Analyzer.Analyze(req.ResumeContent, req.TargetRole)
		observability.ObserveResumeScore(analysis.OverallScore)
		LoggerFrom(r).Info("resume analyzed",
			"overall_score", analysis.OverallScore,
			"confidence", analysis.Confidence)
		writeJSON(w, http.StatusOK, analysis)
	}
}

type generateMCQRequest struct {
	ResumeContent string `json:"resume_content" validate:"required,min=1"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=20"`
	Category      string `json:"category"`
	Save          bool   `json:"save"`
}

type generateMCQResponse struct {
	Questions []domain.MCQItem `json:"questions"`
	SavedIDs  []string         `json:"saved_ids,omitempty"`
}

// GenerateMCQHandler produces resume-grounded practice questions. With save
// set and a category given, the batch is also persisted for later practice.
func (s *Server) GenerateMCQHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateMCQRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if !s.allowGeneration(w, r) {
			return
		}
		if req.QuestionCount == 0 {
			req.QuestionCount = 5
		}
		items, err := s.Generator.Generate(r.Context(), req.ResumeContent, req.QuestionCount)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		resp := generateMCQResponse{Questions: items}
		if req.Save && s.Questions != nil {
			if req.Category == "" {
				writeError(w, r, fmt.Errorf("%w: category required to save questions", domain.ErrInvalidArgument), nil)
				return
			}
			ids, err := s.Questions.SaveBatch(r.Context(), req.Category, items)
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			resp.SavedIDs = ids
		}
		LoggerFrom(r).Info("mcq batch generated",
			"requested", req.QuestionCount,
			"returned", len(items),
			"saved", len(resp.SavedIDs))
		writeJSON(w, http.StatusOK, resp)
	}
}

// ListQuestionsHandler returns stored practice questions with the correct
// answer stripped.
func (s *Server) ListQuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category == "" {
			writeError(w, r, fmt.Errorf("%w: category query parameter required", domain.ErrInvalidArgument), nil)
			return
		}
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 100 {
				writeError(w, r, fmt.Errorf("%w: limit must be an integer in [1,100]", domain.ErrInvalidArgument), nil)
				return
			}
			limit = n
		}
		items, err := s.Questions.ListSafe(r.Context(), category, limit)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if items == nil {
			items = []domain.MCQItem{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": items})
	}
}

type validateAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid4"`
	Answer     string `json:"answer" validate:"required,oneof=A B C D a b c d"`
}

// ValidateAnswerHandler checks a practice answer server-side so the answer key
// never ships with the question payload.
func (s *Server) ValidateAnswerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateAnswerRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		check, err := s.Questions.ValidateAnswer(r.Context(), req.QuestionID, req.Answer)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, check)
	}
}

type interviewQuestionsRequest struct {
	Role      string   `json:"role" validate:"required,min=2"`
	Interests []string `json:"interests"`
}

// InterviewQuestionsHandler generates voice interview questions for a role.
func (s *Server) InterviewQuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req interviewQuestionsRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if !s.allowGeneration(w, r) {
			return
		}
		questions, err := s.Interviews.GenerateQuestions(r.Context(), req.Role, req.Interests)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
	}
}

type interviewAnalyzeRequest struct {
	Transcript string          `json:"transcript" validate:"required,min=1"`
	Responses  json.RawMessage `json:"responses"`
}

// InterviewAnalyzeHandler scores a transcript without persisting anything.
func (s *Server) InterviewAnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req interviewAnalyzeRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if !s.allowGeneration(w, r) {
			return
		}
		analysis, err := s.Interviews.AnalyzeResponses(r.Context(), req.Transcript, req.Responses)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}

type startInterviewRequest struct {
	Role string `json:"role" validate:"required,min=2"`
}

// StartInterviewHandler creates a scheduled interview session.
func (s *Server) StartInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startInterviewRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		id, err := s.Interviews.Start(r.Context(), req.Role)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id, "status": string(domain.InterviewScheduled)})
	}
}

type completeInterviewRequest struct {
	Transcript string          `json:"transcript" validate:"required,min=1"`
	Responses  json.RawMessage `json:"responses"`
}

// CompleteInterviewHandler analyzes the transcript and persists the finished
// session.
func (s *Server) CompleteInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req completeInterviewRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if !s.allowGeneration(w, r) {
			return
		}
		analysis, err := s.Interviews.Complete(r.Context(), id, req.Transcript, req.Responses)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}

// HealthzHandler reports process liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler reports dependency readiness. The AI check is advisory only;
// a degraded provider still serves the deterministic endpoints.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		checks := map[string]string{}
		healthy := true
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks["db"] = err.Error()
				healthy = false
			} else {
				checks["db"] = "ok"
			}
		}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}
		if s.AICheck != nil {
			if err := s.AICheck(ctx); err != nil {
				checks["ai"] = "degraded: " + err.Error()
			} else {
				checks["ai"] = "ok"
			}
		}
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"ready": healthy, "checks": checks})
	}
}
