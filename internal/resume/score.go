package resume

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
)

var (
	summaryKeyword = regexp.MustCompile(`(?i)summary|profile|objective`)
	certKeyword    = regexp.MustCompile(`(?i)certificat|certified|course|degree`)
)

// shortResumeChars is the length below which a resume is considered too short
// for a full assessment.
const shortResumeChars = 120

// Analyzer computes a deterministic, evidence-backed resume analysis. It is a
// transparent linear heuristic, not a statistical model: identical input
// always yields identical output.
type Analyzer struct {
	ex Extractor
}

// NewAnalyzer builds an Analyzer over the given extractor.
func NewAnalyzer(ex Extractor) *Analyzer { return &Analyzer{ex: ex} }

// Analyze scores raw resume text for a target role. It never fails: empty
// input simply accrues the short-resume and missing-section penalties.
func (a *Analyzer) Analyze(resumeContent, targetRole string) domain.ResumeAnalysis {
	trimmed := strings.TrimSpace(resumeContent)
	shortResume := len(trimmed) < shortResumeChars
	ents := a.ex.Extract(resumeContent)

	score := 50
	score += min(len(ents.Skills)*6, 30)
	score += min(len(ents.Projects)*4, 12)
	if len(ents.Companies) > 0 {
		score += 4
	}
	if shortResume {
		score -= 20
	}
	if !summaryKeyword.MatchString(resumeContent) {
		score -= 6
	}
	score = clamp(score, 0, 100)

	confidence := 60 + len(ents.Skills)*6 + len(ents.Projects)*4
	if shortResume {
		confidence -= 30
	}
	confidence = clamp(confidence, 20, 95)

	var caveats []string
	if shortResume {
		caveats = append(caveats, "Resume appears very short; analysis is limited by available content.")
	}
	if len(ents.Skills) == 0 {
		caveats = append(caveats, "No clear technical skills detected; this reduces confidence.")
	}
	if len(ents.Projects) == 0 {
		caveats = append(caveats, "No explicit projects found; adding project descriptions with outcomes will help.")
	}
	if !certKeyword.MatchString(resumeContent) {
		caveats = append(caveats, "No certifications or formal training detected; adding relevant certs can improve fit.")
	}

	var strengths []string
	if len(ents.Skills) > 0 {
		strengths = append(strengths, fmt.Sprintf("Detected skills: %s", strings.Join(ents.Skills, ", ")))
	}
	if len(ents.Projects) > 0 {
		strengths = append(strengths, fmt.Sprintf("Project mentions detected (%d)", len(ents.Projects)))
	}
	if len(ents.Companies) > 0 {
		strengths = append(strengths, fmt.Sprintf("Company mentions detected (%d)", len(ents.Companies)))
	}

	var weaknesses []string
	if shortResume {
		weaknesses = append(weaknesses, "Resume too brief for a full assessment")
	}
	if len(ents.Skills) == 0 {
		weaknesses = append(weaknesses, "No technical skills explicitly listed")
	}
	if len(ents.Projects) == 0 {
		weaknesses = append(weaknesses, "Lack of explicit project result statements")
	}

	evidence := make([]domain.Evidence, 0, 14)
	for _, p := range head(ents.Projects, 3) {
		evidence = append(evidence, domain.Evidence{Type: "project", Snippet: p})
	}
	for _, c := range head(ents.Companies, 3) {
		evidence = append(evidence, domain.Evidence{Type: "company", Snippet: c})
	}
	for _, s := range head(ents.Skills, 8) {
		evidence = append(evidence, domain.Evidence{Type: "skill", Snippet: s})
	}

	notes := "No major caveats detected."
	if len(caveats) > 0 {
		notes = "Notes: " + strings.Join(caveats, " ")
	}
	aiFeedback := fmt.Sprintf(
		"Overall, the resume scores %d/100 with confidence %d%%.\n%s\nThis assessment focuses on explicit mentions of projects, companies, and technical skills. If key experience is omitted (e.g., private projects, NDA work), add concise descriptions to improve accuracy.",
		score, confidence, notes,
	)

	return domain.ResumeAnalysis{
		OverallScore: score,
		Confidence:   confidence,
		Strengths:    strengths,
		Weaknesses:   weaknesses,
		Evidence:     evidence,
		AIFeedback:   aiFeedback,
		Suggestions: domain.Suggestions{
			PrioritizedNextSteps: []string{
				"Add a 2-3 sentence professional summary focused on the target role with quantifiable outcomes.",
				"For each project, add 1-2 bullet points with achievements and metrics (e.g., % improvement, scale, impact).",
				"List key technical skills at the top and include versions/tools (e.g., Docker, Kubernetes, AWS EC2).",
			},
			QuickEdits: []string{
				"Add metrics to one recent project: 'Reduced latency by 30% by refactoring X pipeline.'",
				"Include a Certifications section if you have relevant certificates (AWS, TensorFlow, etc.).",
				"Format experience bullets to start with strong action verbs and end with measurable results.",
			},
			LongerTerm: []string{
				"If targeting ML roles, add 1-2 small reproducible projects with data and evaluation metrics.",
				"If targeting DevOps/Platform roles, add CI/CD and containerization examples and the deployment scale.",
			},
		},
		RecommendedSnippets: domain.RecommendedSnippets{
			ProfessionalSummary: fmt.Sprintf("Experienced %s with X+ years delivering measurable results (e.g., reduced costs by 20%%, improved throughput by 30%%). Focus: [primary technologies].", targetRole),
			ProjectBullet:       "Developed [feature] using [tech] which resulted in [quantified outcome, metric]. Example: Reduced processing time by 40% through optimized data pipeline using Python and AWS Lambda.",
		},
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func head(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
