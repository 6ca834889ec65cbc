package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pranav-ms/uni-records-api/internal/models"
)

// ErrDuplicatePendingRequest reports that the pair already has a pending
// request; the partial unique index on pending rows raises it under races
// that slip past the HasPending pre-check.
var ErrDuplicatePendingRequest = errors.New("pending request already exists")

// ReevaluationRepository stores re-evaluation requests. Status is an explicit
// enum; history for a pair is preserved, never inferred from row presence.
type ReevaluationRepository struct {
	db *sqlx.DB
}

// NewReevaluationRepository constructs the repository.
func NewReevaluationRepository(db *sqlx.DB) *ReevaluationRepository {
	return &ReevaluationRepository{db: db}
}

// HasPending reports whether a pending request exists for the pair.
func (r *ReevaluationRepository) HasPending(ctx context.Context, studentID, classID string) (bool, error) {
	const query = `SELECT 1 FROM reevaluation_requests WHERE student_id = $1 AND class_id = $2 AND status = $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, classID, models.ReevaluationPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check pending request: %w", err)
	}
	return true, nil
}

// Create persists a new pending request.
func (r *ReevaluationRepository) Create(ctx context.Context, request *models.ReevaluationRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	request.Status = models.ReevaluationPending
	const query = `INSERT INTO reevaluation_requests (id, student_id, class_id, status, reason, created_at)
        VALUES (:id, :student_id, :class_id, :status, :reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePendingRequest
		}
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

// Decide moves a pending request to approved or rejected. The row is locked
// so a decision cannot race a grade write consuming the same request.
// Returns sql.ErrNoRows for unknown ids and ErrRequestDecided when the
// request already left pending.
func (r *ReevaluationRepository) Decide(ctx context.Context, requestID string, outcome models.ReevaluationStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin decision: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var request models.ReevaluationRequest
	const query = `SELECT id, student_id, class_id, status, reason, created_at, decided_at
        FROM reevaluation_requests WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &request, query, requestID); err != nil {
		return err
	}
	if request.Status != models.ReevaluationPending {
		return ErrRequestDecided
	}

	const update = `UPDATE reevaluation_requests SET status = $2, decided_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, requestID, outcome, time.Now().UTC()); err != nil {
		return fmt.Errorf("decide request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit decision: %w", err)
	}
	return nil
}

// ListByStatus returns requests in the given status, oldest first.
func (r *ReevaluationRepository) ListByStatus(ctx context.Context, status models.ReevaluationStatus) ([]models.ReevaluationRequest, error) {
	const query = `SELECT id, student_id, class_id, status, reason, created_at, decided_at
        FROM reevaluation_requests WHERE status = $1 ORDER BY created_at`
	var requests []models.ReevaluationRequest
	if err := r.db.SelectContext(ctx, &requests, query, status); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}
