// Package resume implements the local resume heuristics: line-level
// sanitization, regex entity extraction, and deterministic scoring. None of
// these touch the network; the completion-backed paths live elsewhere.
package resume

import (
	"regexp"
	"strings"

	"github.com/voiceflow-labs/interview-prep-api/internal/match"
)

var (
	structuralKeyword = regexp.MustCompile(`(?i)project|module|service|microservice|feature|stack|tech|technology|framework|library|database|api|architecture|design|pattern|kpi|latency|throughput|scal(e|ing)|deploy|pipeline`)
	contactMarker     = regexp.MustCompile(`(?i)\b(@|\.com|mailto:|https?://)`)
	contactKeyword    = regexp.MustCompile(`(?i)linkedin|github|email|phone|mobile|portfolio`)
	lineBreak         = regexp.MustCompile(`\r?\n`)
)

// Sanitizer reduces raw resume text to its technically relevant lines.
type Sanitizer struct {
	m *match.Matcher
}

// NewSanitizer builds a Sanitizer over the given matcher.
func NewSanitizer(m *match.Matcher) *Sanitizer { return &Sanitizer{m: m} }

// Sanitize line-filters raw down to technical content. If fewer than five
// lines survive, the original input is returned verbatim: aggressive filtering
// on short or atypical resumes would destroy legitimate content, so the floor
// trades an occasional leaked personal line for never returning an empty view.
func (s *Sanitizer) Sanitize(raw string) string {
	lines := splitLines(raw)
	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		l := strings.TrimSpace(ln)
		if l == "" {
			continue
		}
		if s.m.MatchesName(l) {
			continue
		}
		if s.m.MatchesCompanySuffix(l) {
			// Likely inside a technical bullet; keep and let the second pass decide.
			kept = append(kept, l)
			continue
		}
		if s.m.MatchesHRPhrase(l) {
			continue
		}
		if s.m.MatchesDate(l) {
			continue
		}
		if contactMarker.MatchString(l) && contactKeyword.MatchString(l) {
			continue
		}
		kept = append(kept, l)
	}

	techy := kept[:0:len(kept)]
	for _, l := range kept {
		if structuralKeyword.MatchString(l) || s.m.ContainsTechToken(l) {
			techy = append(techy, l)
		}
	}

	if len(techy) >= 5 {
		return strings.Join(techy, "\n")
	}
	return raw
}

func splitLines(s string) []string {
	return lineBreak.Split(s, -1)
}
