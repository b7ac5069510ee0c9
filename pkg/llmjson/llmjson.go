// Package llmjson extracts JSON payloads from LLM completion text, tolerating
// surrounding prose and Markdown code fences around the JSON.
package llmjson

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when no JSON of the requested shape can be located.
var ErrNoJSON = errors.New("no JSON payload found in text")

var codeFence = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

func unfence(text string) string {
	candidate := strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}
	return candidate
}

func slice(candidate, open, close string) (string, bool) {
	i := strings.Index(candidate, open)
	j := strings.LastIndex(candidate, close)
	if i == -1 || j <= i {
		return "", false
	}
	return candidate[i : j+1], true
}

// ExtractArray locates a JSON array in text and unmarshals it into v.
func ExtractArray(text string, v any) error {
	candidate, ok := slice(unfence(text), "[", "]")
	if !ok {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(candidate), v)
}

// ExtractObject locates a JSON object in text and unmarshals it into v.
func ExtractObject(text string, v any) error {
	candidate, ok := slice(unfence(text), "{", "}")
	if !ok {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(candidate), v)
}
