package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/voiceflow-labs/interview-prep-api/internal/domain"
)

// InterviewRepo persists voice interview sessions and their analysis.
type InterviewRepo struct{ Pool PgxPool }

// NewInterviewRepo constructs an InterviewRepo with the given pool.
func NewInterviewRepo(p PgxPool) *InterviewRepo { return &InterviewRepo{Pool: p} }

// Create stores a new interview session and returns its id.
func (r *InterviewRepo) Create(ctx domain.Context, iv domain.Interview) (string, error) {
	tracer := otel.Tracer("repo.interviews")
	ctx, span := tracer.Start(ctx, "interviews.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "interviews"),
	)
	id := uuid.New().String()
	q := `INSERT INTO interviews (id, role, status, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5)`
	if _, err := r.Pool.Exec(ctx, q, id, iv.Role, string(iv.Status), iv.CreatedAt, iv.UpdatedAt); err != nil {
		return "", fmt.Errorf("op=interviews.create: %w", err)
	}
	return id, nil
}

// Get fetches an interview by id.
func (r *InterviewRepo) Get(ctx domain.Context, id string) (domain.Interview, error) {
	tracer := otel.Tracer("repo.interviews")
	ctx, span := tracer.Start(ctx, "interviews.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "interviews"),
	)
	q := `SELECT id, role, status, COALESCE(transcript, ''), responses, analysis, created_at, updated_at
	      FROM interviews WHERE id = $1`
	var (
		iv          domain.Interview
		status      string
		analysisRaw []byte
	)
	err := r.Pool.QueryRow(ctx, q, id).Scan(&iv.ID, &iv.Role, &status, &iv.Transcript, &iv.Responses, &analysisRaw, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Interview{}, fmt.Errorf("%w: interview %s", domain.ErrNotFound, id)
		}
		return domain.Interview{}, fmt.Errorf("op=interviews.get: %w", err)
	}
	iv.Status = domain.InterviewStatus(status)
	if len(analysisRaw) > 0 {
		if err := json.Unmarshal(analysisRaw, &iv.Analysis); err != nil {
			return domain.Interview{}, fmt.Errorf("op=interviews.get: decode analysis: %w", err)
		}
	}
	return iv, nil
}

// Complete marks an interview completed and attaches the transcript, raw
// responses, and analysis. Completing twice is a conflict.
func (r *InterviewRepo) Complete(ctx domain.Context, id, transcript string, responses []byte, analysis domain.InterviewAnalysis) error {
	tracer := otel.Tracer("repo.interviews")
	ctx, span := tracer.Start(ctx, "interviews.Complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "interviews"),
	)
	raw, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("op=interviews.complete: encode analysis: %w", err)
	}
	q := `UPDATE interviews
	      SET transcript = $2, responses = $3, analysis = $4, status = $5, updated_at = $6
	      WHERE id = $1 AND status = $7`
	tag, err := r.Pool.Exec(ctx, q, id, transcript, responses, raw,
		string(domain.InterviewCompleted), time.Now().UTC(), string(domain.InterviewScheduled))
	if err != nil {
		return fmt.Errorf("op=interviews.complete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, getErr := r.Get(ctx, id)
		if getErr != nil {
			return getErr
		}
		if existing.Status == domain.InterviewCompleted {
			return fmt.Errorf("%w: interview %s already completed", domain.ErrConflict, id)
		}
		return fmt.Errorf("op=interviews.complete: no rows updated")
	}
	return nil
}
