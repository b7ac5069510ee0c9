// Package match provides the token and pattern predicates used to classify
// free text as technical or personal/HR-flavored. All predicates are pure
// functions over immutable tables built at construction time.
package match

import "strings"

// Matcher answers boolean predicates over a fixed vocabulary and pattern set.
// The zero value is not usable; build one with New or Default.
type Matcher struct {
	tokens   []string
	patterns PersonalPatterns
}

// New builds a Matcher from an explicit vocabulary and pattern set.
func New(tokens []string, patterns PersonalPatterns) *Matcher {
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}
	return &Matcher{tokens: lowered, patterns: patterns}
}

// Default builds a Matcher over the stock vocabulary and patterns.
func Default() *Matcher {
	return New(TechTokens, DefaultPersonalPatterns())
}

// ContainsTechToken reports whether text, lower-cased, contains any vocabulary
// entry as a substring.
func (m *Matcher) ContainsTechToken(text string) bool {
	t := strings.ToLower(text)
	for _, tok := range m.tokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

// LooksPersonalOrHR reports whether text matches any personal or HR pattern:
// a configured name, a company suffix, a month name, a 4-digit year in
// 1900-2099, a duration expression, or an HR/biographical phrase. Empty text
// counts as personal so blank questions never pass the filter.
func (m *Matcher) LooksPersonalOrHR(text string) bool {
	if text == "" {
		return true
	}
	for _, re := range m.patterns.Names {
		if re.MatchString(text) {
			return true
		}
	}
	if m.patterns.CompanySuffix.MatchString(text) {
		return true
	}
	if m.patterns.Month.MatchString(text) || m.patterns.Year.MatchString(text) || m.patterns.Duration.MatchString(text) {
		return true
	}
	for _, re := range m.patterns.HRPhrases {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// MatchesName reports whether text matches a configured name pattern.
func (m *Matcher) MatchesName(text string) bool {
	for _, re := range m.patterns.Names {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// MatchesCompanySuffix reports whether text contains a company-suffix word.
func (m *Matcher) MatchesCompanySuffix(text string) bool {
	return m.patterns.CompanySuffix.MatchString(text)
}

// MatchesHRPhrase reports whether text matches any HR/biographical phrase.
func (m *Matcher) MatchesHRPhrase(text string) bool {
	for _, re := range m.patterns.HRPhrases {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// MatchesDate reports whether text contains a month name, a year, or a
// duration expression.
func (m *Matcher) MatchesDate(text string) bool {
	return m.patterns.Month.MatchString(text) || m.patterns.Year.MatchString(text) || m.patterns.Duration.MatchString(text)
}
