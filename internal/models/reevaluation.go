package models

import "time"

// ReevaluationStatus is the explicit lifecycle of a re-evaluation request.
// The approved→completed transition happens atomically with the marks
// overwrite that consumes the request.
type ReevaluationStatus string

// Possible re-evaluation statuses.
const (
	ReevaluationPending   ReevaluationStatus = "pending"
	ReevaluationApproved  ReevaluationStatus = "approved"
	ReevaluationRejected  ReevaluationStatus = "rejected"
	ReevaluationCompleted ReevaluationStatus = "completed"
)

// ReevaluationRequest is a student's petition to reopen a locked grade.
// At most one request per (student, class) may be pending at a time.
type ReevaluationRequest struct {
	ID        string             `db:"id" json:"id"`
	StudentID string             `db:"student_id" json:"student_id"`
	ClassID   string             `db:"class_id" json:"class_id"`
	Status    ReevaluationStatus `db:"status" json:"status"`
	Reason    string             `db:"reason" json:"reason"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	DecidedAt *time.Time         `db:"decided_at" json:"decided_at,omitempty"`
}
