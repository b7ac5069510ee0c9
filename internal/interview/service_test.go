package interview_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
	"github.com/voiceflow-labs/interview-prep-api/internal/interview"
)

type stubCompletion struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (c *stubCompletion) Complete(_ domain.Context, prompt string, _ domain.CompletionOptions) (string, error) {
	c.calls++
	c.prompt = prompt
	return c.response, c.err
}

type stubInterviewRepo struct {
	created   []domain.Interview
	getIv     domain.Interview
	getErr    error
	completed map[string]domain.InterviewAnalysis
}

func (r *stubInterviewRepo) Create(_ domain.Context, iv domain.Interview) (string, error) {
	r.created = append(r.created, iv)
	return "iv-1", nil
}

func (r *stubInterviewRepo) Get(_ domain.Context, id string) (domain.Interview, error) {
	if r.getErr != nil {
		return domain.Interview{}, r.getErr
	}
	iv := r.getIv
	iv.ID = id
	return iv, nil
}

func (r *stubInterviewRepo) Complete(_ domain.Context, id, _ string, _ []byte, analysis domain.InterviewAnalysis) error {
	if r.completed == nil {
		r.completed = map[string]domain.InterviewAnalysis{}
	}
	r.completed[id] = analysis
	return nil
}

const analysisJSON = `{
  "overall_score": 130,
  "technical_score": 80,
  "communication_score": -5,
  "sentiment_score": 90,
  "strengths": ["Clear communication"],
  "improvements": ["More examples"],
  "detailed_feedback": "Solid overall.",
  "question_analysis": [
    {"question": "Q1", "response_quality": "good", "feedback": "nice"}
  ]
}`

func TestGenerateQuestions(t *testing.T) {
	t.Parallel()
	client := &stubCompletion{response: `[
		{"question":"Explain goroutine scheduling","category":"technical","difficulty":"intermediate"},
		{"question":"Describe a conflict you resolved","category":"behavioral","difficulty":"beginner"}
	]`}
	svc := interview.NewService(client, &stubInterviewRepo{})

	qs, err := svc.GenerateQuestions(context.Background(), "Backend Engineer", []string{"concurrency", "databases"})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "technical", qs[0].Category)
	assert.Contains(t, client.prompt, "Backend Engineer")
	assert.Contains(t, client.prompt, "concurrency, databases")
}

func TestGenerateQuestions_RoleRequired(t *testing.T) {
	t.Parallel()
	svc := interview.NewService(&stubCompletion{}, &stubInterviewRepo{})

	_, err := svc.GenerateQuestions(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAnalyzeResponses_ClampsScores(t *testing.T) {
	t.Parallel()
	client := &stubCompletion{response: "```json\n" + analysisJSON + "\n```"}
	svc := interview.NewService(client, &stubInterviewRepo{})

	analysis, err := svc.AnalyzeResponses(context.Background(), "transcript text", json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 100, analysis.OverallScore)
	assert.Equal(t, 0, analysis.CommunicationScore)
	assert.Equal(t, 80, analysis.TechnicalScore)
	require.Len(t, analysis.QuestionAnalysis, 1)
	assert.Equal(t, "good", analysis.QuestionAnalysis[0].ResponseQuality)
}

func TestAnalyzeResponses_Malformed(t *testing.T) {
	t.Parallel()
	client := &stubCompletion{response: "I could not analyze this transcript."}
	svc := interview.NewService(client, &stubInterviewRepo{})

	_, err := svc.AnalyzeResponses(context.Background(), "transcript text", nil)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestAnalyzeResponses_TranscriptRequired(t *testing.T) {
	t.Parallel()
	svc := interview.NewService(&stubCompletion{}, &stubInterviewRepo{})

	_, err := svc.AnalyzeResponses(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestStart(t *testing.T) {
	t.Parallel()
	repo := &stubInterviewRepo{}
	svc := interview.NewService(&stubCompletion{}, repo)

	id, err := svc.Start(context.Background(), "Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, "iv-1", id)
	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.InterviewScheduled, repo.created[0].Status)
	assert.Equal(t, "Backend Engineer", repo.created[0].Role)
}

func TestComplete(t *testing.T) {
	t.Parallel()
	client := &stubCompletion{response: analysisJSON}
	repo := &stubInterviewRepo{getIv: domain.Interview{Status: domain.InterviewScheduled}}
	svc := interview.NewService(client, repo)

	analysis, err := svc.Complete(context.Background(), "iv-1", "transcript text", json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 100, analysis.OverallScore)
	assert.Contains(t, repo.completed, "iv-1")
}

func TestComplete_NotFound(t *testing.T) {
	t.Parallel()
	repo := &stubInterviewRepo{getErr: fmt.Errorf("%w: interview missing", domain.ErrNotFound)}
	svc := interview.NewService(&stubCompletion{}, repo)

	_, err := svc.Complete(context.Background(), "missing", "transcript", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
