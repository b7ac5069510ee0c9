package llmjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceflow-labs/interview-prep-api/pkg/llmjson"
)

func TestExtractArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{"bare array", `["a","b"]`, []string{"a", "b"}, false},
		{"fenced json", "```json\n[\"a\",\"b\"]\n```", []string{"a", "b"}, false},
		{"fence without language", "```\n[\"a\"]\n```", []string{"a"}, false},
		{"prose around array", "Here you go:\n[\"a\"]\nHope that helps!", []string{"a"}, false},
		{"no array", "sorry, I cannot help with that", nil, true},
		{"broken json", `["a",`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got []string
			err := llmjson.ExtractArray(tt.text, &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractArray_NoJSONSentinel(t *testing.T) {
	t.Parallel()
	var got []string
	err := llmjson.ExtractArray("plain prose", &got)
	assert.ErrorIs(t, err, llmjson.ErrNoJSON)
}

func TestExtractObject(t *testing.T) {
	t.Parallel()

	type payload struct {
		Score int `json:"score"`
	}

	var got payload
	require.NoError(t, llmjson.ExtractObject("The result is:\n```json\n{\"score\": 88}\n```\nDone.", &got))
	assert.Equal(t, 88, got.Score)

	err := llmjson.ExtractObject("no braces here", &got)
	assert.ErrorIs(t, err, llmjson.ErrNoJSON)
}
