package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceflow-labs/interview-prep-api/internal/adapter/repo/postgres"
	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
)

func TestQuestionRepo_SaveBatch(t *testing.T) {
	t.Parallel()
	pool := &poolStub{}
	repo := postgres.NewQuestionRepo(pool)

	items := []domain.MCQItem{
		{Question: "q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "a"},
		{Question: "q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "C"},
	}
	ids, err := repo.SaveBatch(context.Background(), "backend", items)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	for _, id := range ids {
		_, parseErr := uuid.Parse(id)
		assert.NoError(t, parseErr)
	}
	require.Len(t, pool.execArgs, 2)
	// Answers are normalized to uppercase on write.
	assert.Equal(t, "A", pool.execArgs[0][7])
	assert.Equal(t, "C", pool.execArgs[1][7])
	assert.Equal(t, "backend", pool.execArgs[0][1])
}

func TestQuestionRepo_SaveBatch_ExecError(t *testing.T) {
	t.Parallel()
	pool := &poolStub{execErr: errors.New("boom")}
	repo := postgres.NewQuestionRepo(pool)

	_, err := repo.SaveBatch(context.Background(), "backend", []domain.MCQItem{{Question: "q"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions.save_batch")
}

func TestQuestionRepo_ListSafe(t *testing.T) {
	t.Parallel()
	pool := &poolStub{rows: &rowsStub{rows: [][]any{
		{"id-1", "backend", "q1", "a", "b", "c", "d"},
		{"id-2", "backend", "q2", "a", "b", "c", "d"},
	}}}
	repo := postgres.NewQuestionRepo(pool)

	items, err := repo.ListSafe(context.Background(), "backend", 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "q1", items[0].Question)
	// The answer column is never selected.
	assert.Empty(t, items[0].CorrectAnswer)
	// A non-positive limit falls back to the default page size.
	require.Len(t, pool.queryArgs, 2)
	assert.Equal(t, 10, pool.queryArgs[1])
}

func TestQuestionRepo_ValidateAnswer(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(dest ...any) error {
		*(dest[0].(*string)) = "B"
		return nil
	}}}
	repo := postgres.NewQuestionRepo(pool)

	check, err := repo.ValidateAnswer(context.Background(), "qid", " b ")
	require.NoError(t, err)
	assert.True(t, check.IsCorrect)
	assert.Equal(t, "B", check.CorrectAnswer)

	check, err = repo.ValidateAnswer(context.Background(), "qid", "D")
	require.NoError(t, err)
	assert.False(t, check.IsCorrect)
}

func TestQuestionRepo_ValidateAnswer_NotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	repo := postgres.NewQuestionRepo(pool)

	_, err := repo.ValidateAnswer(context.Background(), "missing", "A")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
