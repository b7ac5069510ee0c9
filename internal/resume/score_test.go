package resume_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceflow-labs/interview-prep-api/internal/resume"
)

const strongResume = `Summary: Backend engineer focused on distributed systems.
Projects: Atlas payments platform
Built a streaming pipeline using Kafka and Python
Developed dashboards with React and TypeScript
Implemented SQL tuning on AWS and Docker deployments at Finova Corp`

func TestAnalyze_StrongResume(t *testing.T) {
	t.Parallel()
	a := resume.NewAnalyzer(resume.NewRegexExtractor())

	out := a.Analyze(strongResume, "Backend Engineer")

	// 50 base + 30 skills cap + 12 projects cap + 4 companies, no penalties.
	assert.Equal(t, 96, out.OverallScore)
	assert.Equal(t, 95, out.Confidence)
	assert.NotEmpty(t, out.Strengths)
	assert.Empty(t, out.Weaknesses)
	assert.Contains(t, out.AIFeedback, "scores 96/100")
	assert.Contains(t, out.RecommendedSnippets.ProfessionalSummary, "Backend Engineer")
	assert.LessOrEqual(t, len(out.Evidence), 14)
}

func TestAnalyze_ShortResume(t *testing.T) {
	t.Parallel()
	a := resume.NewAnalyzer(resume.NewRegexExtractor())

	out := a.Analyze("Student.", "Software Engineer")

	// 50 base - 20 short - 6 missing summary, nothing detected.
	assert.Equal(t, 24, out.OverallScore)
	assert.Equal(t, 30, out.Confidence)
	assert.Contains(t, out.Weaknesses, "Resume too brief for a full assessment")
	assert.Contains(t, out.AIFeedback, "Resume appears very short")
}

func TestAnalyze_ProjectSentenceResume(t *testing.T) {
	t.Parallel()
	a := resume.NewAnalyzer(resume.NewRegexExtractor())

	out := a.Analyze("Built the Order Pipeline project using Kafka and Python. Reduced latency by 30%.", "Backend Engineer")

	assert.NotContains(t, out.Weaknesses, "No technical skills explicitly listed")
	var projectSnippets []string
	for _, ev := range out.Evidence {
		if ev.Type == "project" {
			projectSnippets = append(projectSnippets, ev.Snippet)
		}
	}
	require.NotEmpty(t, projectSnippets)
	joined := strings.Join(projectSnippets, " | ")
	assert.Contains(t, joined, "Order Pipeline")
	// Two skills, two project spans, short-resume and missing-summary penalties.
	assert.Equal(t, 44, out.OverallScore)
	assert.Equal(t, 50, out.Confidence)
}

func TestAnalyze_EmptyResume(t *testing.T) {
	t.Parallel()
	a := resume.NewAnalyzer(resume.NewRegexExtractor())

	out := a.Analyze("", "Anything")
	assert.Equal(t, 24, out.OverallScore)
	assert.Equal(t, 30, out.Confidence)
	assert.NotEmpty(t, out.AIFeedback)
}

func TestAnalyze_Deterministic(t *testing.T) {
	t.Parallel()
	a := resume.NewAnalyzer(resume.NewRegexExtractor())

	first := a.Analyze(strongResume, "Backend Engineer")
	second := a.Analyze(strongResume, "Backend Engineer")
	assert.Equal(t, first, second)
}

func TestAnalyze_BoundsHold(t *testing.T) {
	t.Parallel()
	a := resume.NewAnalyzer(resume.NewRegexExtractor())

	inputs := []string{
		"",
		"x",
		strongResume,
		"Summary: generalist\n" + strongResume + "\n" + strongResume,
		"kafka python sql aws docker kubernetes react node flutter ml git tensorflow pytorch",
	}
	for _, in := range inputs {
		out := a.Analyze(in, "Engineer")
		assert.GreaterOrEqual(t, out.OverallScore, 0)
		assert.LessOrEqual(t, out.OverallScore, 100)
		assert.GreaterOrEqual(t, out.Confidence, 20)
		assert.LessOrEqual(t, out.Confidence, 95)
	}
}

func TestAnalyze_EvidenceCaps(t *testing.T) {
	t.Parallel()
	a := resume.NewAnalyzer(resume.NewRegexExtractor())

	out := a.Analyze(strongResume+"\n"+strongResume+"\n"+strongResume, "Engineer")
	var projects, companies, skills int
	for _, ev := range out.Evidence {
		switch ev.Type {
		case "project":
			projects++
		case "company":
			companies++
		case "skill":
			skills++
		default:
			t.Fatalf("unexpected evidence type %q", ev.Type)
		}
	}
	require.LessOrEqual(t, projects, 3)
	require.LessOrEqual(t, companies, 3)
	require.LessOrEqual(t, skills, 8)
}
