package mcq

import (
	"fmt"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
	"github.com/voiceflow-labs/interview-prep-api/pkg/llmjson"
)

// ExtractJSONArray locates a JSON array inside model output that may be
// wrapped in prose or Markdown code fences, and parses it into MCQ items.
// Returns domain.ErrMalformedResponse when no array-shaped JSON is found or
// parsing fails.
func ExtractJSONArray(text string) ([]domain.MCQItem, error) {
	var items []domain.MCQItem
	if err := llmjson.ExtractArray(text, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return items, nil
}
