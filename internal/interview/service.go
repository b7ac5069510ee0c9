// Package interview provides voice-interview support: question generation for
// a role, transcript analysis, and persistence of finished sessions.
package interview

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
	"github.com/voiceflow-labs/interview-prep-api/pkg/llmjson"
)

// Service orchestrates completion calls and interview persistence.
type Service struct {
	client domain.CompletionClient
	repo   domain.InterviewRepository
}

// NewService wires a Service from its dependencies.
func NewService(client domain.CompletionClient, repo domain.InterviewRepository) *Service {
	return &Service{client: client, repo: repo}
}

// GenerateQuestions asks the completion capability for five progressive
// interview questions for a role and areas of interest.
func (s *Service) GenerateQuestions(ctx domain.Context, role string, interests []string) ([]domain.InterviewQuestion, error) {
	if role == "" {
		return nil, fmt.Errorf("%w: role required", domain.ErrInvalidArgument)
	}

	prompt := fmt.Sprintf(`Generate 5 professional interview questions for a %s position.
Focus on these areas of interest: %s.

Format the response as a JSON array of objects with this structure:
[
  {
    "question": "Your question here",
    "category": "technical|behavioral|situational",
    "difficulty": "beginner|intermediate|advanced"
  }
]

Make questions progressive in difficulty and relevant to the role.`, role, strings.Join(interests, ", "))

	text, err := s.client.Complete(ctx, prompt, domain.CompletionOptions{Temperature: 0.7, MaxOutputTokens: 2048})
	if err != nil {
		return nil, fmt.Errorf("op=interview.generate: %w", err)
	}

	var questions []domain.InterviewQuestion
	if err := llmjson.ExtractArray(text, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return questions, nil
}

// AnalyzeResponses scores a finished interview transcript. Scores are clamped
// to [0,100] since the model occasionally wanders outside its instructions.
func (s *Service) AnalyzeResponses(ctx domain.Context, transcript string, responses json.RawMessage) (domain.InterviewAnalysis, error) {
	if transcript == "" {
		return domain.InterviewAnalysis{}, fmt.Errorf("%w: transcript required", domain.ErrInvalidArgument)
	}

	prompt := fmt.Sprintf(`Analyze this voice interview transcript and provide detailed feedback:

TRANSCRIPT:
%s

RESPONSES:
%s

Please provide analysis in the following JSON format:
{
  "overall_score": 85,
  "technical_score": 80,
  "communication_score": 90,
  "sentiment_score": 85,
  "strengths": ["Clear communication", "Good technical knowledge"],
  "improvements": ["Could provide more specific examples"],
  "detailed_feedback": "Comprehensive feedback paragraph here",
  "question_analysis": [
    {
      "question": "Question text",
      "response_quality": "good|average|poor",
      "feedback": "Specific feedback for this question"
    }
  ]
}

Score each category from 0-100. Be constructive and specific in feedback.`, transcript, string(responses))

	text, err := s.client.Complete(ctx, prompt, domain.CompletionOptions{Temperature: 0.3, MaxOutputTokens: 4096})
	if err != nil {
		return domain.InterviewAnalysis{}, fmt.Errorf("op=interview.analyze: %w", err)
	}

	var analysis domain.InterviewAnalysis
	if err := llmjson.ExtractObject(text, &analysis); err != nil {
		return domain.InterviewAnalysis{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	analysis.OverallScore = clampScore(analysis.OverallScore)
	analysis.TechnicalScore = clampScore(analysis.TechnicalScore)
	analysis.CommunicationScore = clampScore(analysis.CommunicationScore)
	analysis.SentimentScore = clampScore(analysis.SentimentScore)
	return analysis, nil
}

// Start creates a scheduled interview session for a role.
func (s *Service) Start(ctx domain.Context, role string) (string, error) {
	if role == "" {
		return "", fmt.Errorf("%w: role required", domain.ErrInvalidArgument)
	}
	now := time.Now().UTC()
	return s.repo.Create(ctx, domain.Interview{
		Role:      role,
		Status:    domain.InterviewScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Complete analyzes the transcript and persists the finished interview.
func (s *Service) Complete(ctx domain.Context, id, transcript string, responses json.RawMessage) (domain.InterviewAnalysis, error) {
	if id == "" {
		return domain.InterviewAnalysis{}, fmt.Errorf("%w: interview id required", domain.ErrInvalidArgument)
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return domain.InterviewAnalysis{}, err
	}
	analysis, err := s.AnalyzeResponses(ctx, transcript, responses)
	if err != nil {
		return domain.InterviewAnalysis{}, err
	}
	if err := s.repo.Complete(ctx, id, transcript, responses, analysis); err != nil {
		return domain.InterviewAnalysis{}, err
	}
	return analysis, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
