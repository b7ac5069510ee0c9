// Package postgres provides PostgreSQL repository adapters.
package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
)

// QuestionRepo persists generated MCQ items. Correct answers are stored but
// never returned by ListSafe; clients validate through ValidateAnswer so the
// answer key cannot leak into the practice UI.
type QuestionRepo struct{ Pool PgxPool }

// NewQuestionRepo constructs a QuestionRepo with the given pool.
func NewQuestionRepo(p PgxPool) *QuestionRepo { return &QuestionRepo{Pool: p} }

// SaveBatch stores items under a category and returns the generated ids.
func (r *QuestionRepo) SaveBatch(ctx domain.Context, category string, items []domain.MCQItem) ([]string, error) {
	tracer := otel.Tracer("repo.questions")
	ctx, span := tracer.Start(ctx, "questions.SaveBatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "mcq_questions"),
	)
	ids := make([]string, 0, len(items))
	now := time.Now().UTC()
	q := `INSERT INTO mcq_questions (id, category, question, option_a, option_b, option_c, option_d, correct_answer, created_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	for _, it := range items {
		id := uuid.New().String()
		if _, err := r.Pool.Exec(ctx, q, id, category, it.Question, it.OptionA, it.OptionB, it.OptionC, it.OptionD, strings.ToUpper(it.CorrectAnswer), now); err != nil {
			return nil, fmt.Errorf("op=questions.save_batch: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ListSafe returns up to limit questions for a category with the correct
// answer stripped.
func (r *QuestionRepo) ListSafe(ctx domain.Context, category string, limit int) ([]domain.MCQItem, error) {
	tracer := otel.Tracer("repo.questions")
	ctx, span := tracer.Start(ctx, "questions.ListSafe")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "mcq_questions"),
	)
	if limit <= 0 {
		limit = 10
	}
	q := `SELECT id, category, question, option_a, option_b, option_c, option_d
	      FROM mcq_questions WHERE category = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.Pool.Query(ctx, q, category, limit)
	if err != nil {
		return nil, fmt.Errorf("op=questions.list_safe: %w", err)
	}
	defer rows.Close()
	var items []domain.MCQItem
	for rows.Next() {
		var it domain.MCQItem
		if err := rows.Scan(&it.ID, &it.Category, &it.Question, &it.OptionA, &it.OptionB, &it.OptionC, &it.OptionD); err != nil {
			return nil, fmt.Errorf("op=questions.list_safe: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ValidateAnswer checks a submitted answer server-side.
func (r *QuestionRepo) ValidateAnswer(ctx domain.Context, questionID, userAnswer string) (domain.AnswerCheck, error) {
	tracer := otel.Tracer("repo.questions")
	ctx, span := tracer.Start(ctx, "questions.ValidateAnswer")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "mcq_questions"),
	)
	q := `SELECT correct_answer FROM mcq_questions WHERE id = $1`
	var correct string
	if err := r.Pool.QueryRow(ctx, q, questionID).Scan(&correct); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AnswerCheck{}, fmt.Errorf("%w: question %s", domain.ErrNotFound, questionID)
		}
		return domain.AnswerCheck{}, fmt.Errorf("op=questions.validate_answer: %w", err)
	}
	return domain.AnswerCheck{
		IsCorrect:     strings.EqualFold(strings.TrimSpace(userAnswer), correct),
		CorrectAnswer: correct,
	}, nil
}
