package resume

import (
	"regexp"
	"strings"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
)

// Extractor pulls project, company, and skill mentions out of raw resume
// text. Implementations are heuristics, not entity recognizers; over- and
// under-matching is expected. The interface exists so a better extractor can
// replace the regex one without touching the scorer.
type Extractor interface {
	Extract(resume string) domain.ExtractedEntities
}

// SkillVocabulary is the fixed technology subset tested for the skills list,
// returned in this order.
var SkillVocabulary = []string{
	"python", "javascript", "typescript", "sql", "aws", "azure", "docker", "kubernetes",
	"ci/cd", "git", "tensorflow", "pytorch", "react", "node", "react native", "flutter",
	"ml", "data analysis", "kafka",
}

var (
	projectLabel   = regexp.MustCompile(`(?i)projects?\s*[:\-]?\s*([^\n.;]+)`)
	projectVerb    = regexp.MustCompile(`(?i)(led|built|developed|implemented)\s([^.\n]+)`)
	companyAfterAt = regexp.MustCompile(`\b(?:at|@|company[:\-])\s*([A-Z][A-Za-z0-9&.\- ]{2,50})`)
	companyRole    = regexp.MustCompile(`([A-Z][A-Za-z0-9&.\- ]{2,50})\s*[-|—]\s*(?:Software|Engineer|Manager|Lead|Developer)`)
	multiSpace     = regexp.MustCompile(`\s{2,}`)
)

// RegexExtractor is the stock heuristic extractor.
type RegexExtractor struct{}

// NewRegexExtractor returns the stock extractor.
func NewRegexExtractor() RegexExtractor { return RegexExtractor{} }

// Extract runs the project, company, and skill passes over raw text.
func (RegexExtractor) Extract(resume string) domain.ExtractedEntities {
	return domain.ExtractedEntities{
		Projects:  extractProjects(resume),
		Companies: extractCompanies(resume),
		Skills:    extractSkills(resume),
	}
}

func extractProjects(resume string) []string {
	projects := []string{}
	for _, m := range projectLabel.FindAllStringSubmatch(resume, -1) {
		if p := collapse(m[1]); p != "" {
			projects = append(projects, p)
		}
	}
	// Action-verb spans often describe projects that never carry a "Project:"
	// label; dedupe against the first pass by exact match.
	for _, m := range projectVerb.FindAllStringSubmatch(resume, -1) {
		p := collapse(m[2])
		if p != "" && !contains(projects, p) {
			projects = append(projects, p)
		}
	}
	return projects
}

func extractCompanies(resume string) []string {
	companies := []string{}
	for _, m := range companyAfterAt.FindAllStringSubmatch(resume, -1) {
		if c := collapse(m[1]); c != "" {
			companies = append(companies, c)
		}
	}
	for _, m := range companyRole.FindAllStringSubmatch(resume, -1) {
		c := strings.TrimSpace(m[1])
		if c != "" && !contains(companies, c) {
			companies = append(companies, c)
		}
	}
	return companies
}

func extractSkills(resume string) []string {
	lower := strings.ToLower(resume)
	found := []string{}
	for _, s := range SkillVocabulary {
		if strings.Contains(lower, s) {
			found = append(found, s)
		}
	}
	return found
}

func collapse(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
