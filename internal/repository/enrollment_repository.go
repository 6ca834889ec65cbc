package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pranav-ms/uni-records-api/internal/models"
)

// Sentinel errors surfaced by the ledger; services translate them into the
// API error taxonomy.
var (
	// ErrDuplicateEnrollment reports that the (student, class) uniqueness
	// constraint fired, i.e. a concurrent request for the same pair won.
	ErrDuplicateEnrollment = errors.New("duplicate enrollment")
	// ErrNoSeats reports that the guarded seat decrement matched no row.
	ErrNoSeats = errors.New("no seats remaining")
	// ErrRequestDecided reports a decision on a non-pending request.
	ErrRequestDecided = errors.New("request already decided")
)

// RegistrationSnapshot is the authoritative state a registration decision is
// made against. Target is nil when the class does not exist. It is read with
// the class row locked, so it cannot go stale before commit.
type RegistrationSnapshot struct {
	Target  *models.ClassSnapshot
	Current []models.EnrolledCourse
}

// GradeUpdate describes the mutation a grading decision produced.
type GradeUpdate struct {
	Marks            float64
	Grade            models.Grade
	ConsumeRequestID string
}

// EnrollmentRepository owns the enrollment ledger: seat-consistent
// registration, the grade state machine's storage side, and attendance
// counters. All multi-row mutations run in a single transaction.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Register runs the evaluate-then-commit registration transaction. It locks
// the target class row, builds the snapshot, lets decide veto the admission,
// and only then inserts the enrollment and decrements the seat counter. Both
// mutations commit together or not at all.
func (r *EnrollmentRepository) Register(ctx context.Context, studentID, classID string, decide func(RegistrationSnapshot) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var snapshot RegistrationSnapshot
	var target models.ClassSnapshot
	const targetQuery = `SELECT c.id, c.slot, co.credits, c.available_seats
        FROM classes c
        JOIN courses co ON co.code = c.course_code
        WHERE c.id = $1
        FOR UPDATE OF c`
	switch err := tx.GetContext(ctx, &target, targetQuery, classID); {
	case err == nil:
		snapshot.Target = &target
	case errors.Is(err, sql.ErrNoRows):
		snapshot.Target = nil
	default:
		return fmt.Errorf("lock class row: %w", err)
	}

	if snapshot.Target != nil {
		const currentQuery = `SELECT e.class_id, c.slot, co.credits
            FROM enrollments e
            JOIN classes c ON c.id = e.class_id
            JOIN courses co ON co.code = c.course_code
            WHERE e.student_id = $1`
		if err := tx.SelectContext(ctx, &snapshot.Current, currentQuery, studentID); err != nil {
			return fmt.Errorf("load current enrollments: %w", err)
		}
	}

	if err := decide(snapshot); err != nil {
		return err
	}

	const insert = `INSERT INTO enrollments (id, student_id, class_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insert, uuid.NewString(), studentID, classID, time.Now().UTC()); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEnrollment
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}

	const decrement = `UPDATE classes SET available_seats = available_seats - 1 WHERE id = $1 AND available_seats > 0`
	res, err := tx.ExecContext(ctx, decrement, classID)
	if err != nil {
		return fmt.Errorf("decrement seats: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("decrement seats: %w", err)
	} else if affected == 0 {
		return ErrNoSeats
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}

// UpdateMarks runs the grade-write transaction. The enrollment row is locked
// so concurrent writes and re-evaluation decisions for the same pair
// serialize; the approved request (if any) is locked and consumed in the same
// transaction as the grade overwrite.
func (r *EnrollmentRepository) UpdateMarks(ctx context.Context, studentID, classID string, decide func(enrollment *models.Enrollment, approved *models.ReevaluationRequest) (*GradeUpdate, error)) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin grade write: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var enrollment models.Enrollment
	const enrollmentQuery = `SELECT id, student_id, class_id, marks, grade, classes_held, classes_attended, attendance_percentage, created_at, graded_at
        FROM enrollments WHERE student_id = $1 AND class_id = $2 FOR UPDATE`
	if err := tx.GetContext(ctx, &enrollment, enrollmentQuery, studentID, classID); err != nil {
		return err
	}

	var approved *models.ReevaluationRequest
	var request models.ReevaluationRequest
	const requestQuery = `SELECT id, student_id, class_id, status, reason, created_at, decided_at
        FROM reevaluation_requests
        WHERE student_id = $1 AND class_id = $2 AND status = $3
        ORDER BY created_at LIMIT 1
        FOR UPDATE`
	switch err := tx.GetContext(ctx, &request, requestQuery, studentID, classID, models.ReevaluationApproved); {
	case err == nil:
		approved = &request
	case errors.Is(err, sql.ErrNoRows):
	default:
		return fmt.Errorf("lock approved request: %w", err)
	}

	update, err := decide(&enrollment, approved)
	if err != nil {
		return err
	}

	const write = `UPDATE enrollments SET marks = $3, grade = $4, graded_at = $5 WHERE student_id = $1 AND class_id = $2`
	if _, err := tx.ExecContext(ctx, write, studentID, classID, update.Marks, update.Grade, time.Now().UTC()); err != nil {
		return fmt.Errorf("update marks: %w", err)
	}

	if update.ConsumeRequestID != "" {
		const consume = `UPDATE reevaluation_requests SET status = $2 WHERE id = $1 AND status = $3`
		res, err := tx.ExecContext(ctx, consume, update.ConsumeRequestID, models.ReevaluationCompleted, models.ReevaluationApproved)
		if err != nil {
			return fmt.Errorf("consume request: %w", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("consume request: %w", err)
		} else if affected == 0 {
			return ErrRequestDecided
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit grade write: %w", err)
	}
	return nil
}

// IncrementAttendance records one held session for every enrollment in the
// class, marks everyone not in absentIDs as attended, and recomputes the
// derived percentage, all in one transaction. The increments are monotonic:
// a retried call counts a second session.
func (r *EnrollmentRepository) IncrementAttendance(ctx context.Context, classID string, absentIDs []string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin attendance: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const held = `UPDATE enrollments SET classes_held = classes_held + 1 WHERE class_id = $1`
	res, err := tx.ExecContext(ctx, held, classID)
	if err != nil {
		return 0, fmt.Errorf("increment held: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("increment held: %w", err)
	}

	attendedQuery := `UPDATE enrollments SET classes_attended = classes_attended + 1 WHERE class_id = $1`
	attendedArgs := []interface{}{classID}
	if len(absentIDs) > 0 {
		attendedQuery += ` AND student_id <> ALL($2)`
		attendedArgs = append(attendedArgs, pq.Array(absentIDs))
	}
	if _, err := tx.ExecContext(ctx, attendedQuery, attendedArgs...); err != nil {
		return 0, fmt.Errorf("increment attended: %w", err)
	}

	const percentage = `UPDATE enrollments
        SET attendance_percentage = CASE WHEN classes_held = 0 THEN 0
            ELSE classes_attended * 100.0 / classes_held END
        WHERE class_id = $1`
	if _, err := tx.ExecContext(ctx, percentage, classID); err != nil {
		return 0, fmt.Errorf("recompute percentage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit attendance: %w", err)
	}
	return int(affected), nil
}

// FindByStudentAndClass returns the enrollment for the pair.
func (r *EnrollmentRepository) FindByStudentAndClass(ctx context.Context, studentID, classID string) (*models.Enrollment, error) {
	const query = `SELECT id, student_id, class_id, marks, grade, classes_held, classes_attended, attendance_percentage, created_at, graded_at
        FROM enrollments WHERE student_id = $1 AND class_id = $2`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, classID); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListRoster returns the class roster with academic state per student.
func (r *EnrollmentRepository) ListRoster(ctx context.Context, classID string) ([]models.RosterEntry, error) {
	const query = `SELECT u.id AS student_id, u.full_name, u.username, e.marks, e.grade, e.attendance_percentage
        FROM enrollments e
        JOIN users u ON u.id = e.student_id
        WHERE e.class_id = $1
        ORDER BY u.full_name`
	var roster []models.RosterEntry
	if err := r.db.SelectContext(ctx, &roster, query, classID); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return roster, nil
}

// ListAcademicRecords returns all of a student's enrollments with course info.
func (r *EnrollmentRepository) ListAcademicRecords(ctx context.Context, studentID string) ([]models.AcademicRecord, error) {
	const query = `SELECT co.code AS course_code, co.name AS course_name, c.slot, co.credits,
        e.marks, e.grade, e.classes_held, e.classes_attended, e.attendance_percentage
        FROM enrollments e
        JOIN classes c ON c.id = e.class_id
        JOIN courses co ON co.code = c.course_code
        WHERE e.student_id = $1
        ORDER BY co.code`
	var records []models.AcademicRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list academic records: %w", err)
	}
	return records, nil
}

// TimetableRows returns the raw rows the timetable view is composed from.
func (r *EnrollmentRepository) TimetableRows(ctx context.Context, studentID string) ([]models.TimetableRow, error) {
	const query = `SELECT co.code AS course_code, co.name AS course_name, u.full_name AS faculty_name, c.slot
        FROM enrollments e
        JOIN classes c ON c.id = e.class_id
        JOIN courses co ON co.code = c.course_code
        JOIN users u ON u.id = c.faculty_id
        WHERE e.student_id = $1`
	var rows []models.TimetableRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("load timetable rows: %w", err)
	}
	return rows, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
