package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-ms/uni-records-api/internal/models"
)

func newLedgerMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func expectTargetLock(mock sqlmock.Sqlmock, classID string, rows *sqlmock.Rows) *sqlmock.ExpectedQuery {
	return mock.ExpectQuery(`SELECT c\.id, c\.slot, co\.credits, c\.available_seats`).
		WithArgs(classID).
		WillReturnRows(rows)
}

func TestRegisterCommitsEnrollmentAndSeat(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	expectTargetLock(mock, "class-1", sqlmock.NewRows([]string{"id", "slot", "credits", "available_seats"}).
		AddRow("class-1", "A1", 4, 3))
	mock.ExpectQuery(`SELECT e\.class_id, c\.slot, co\.credits`).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "slot", "credits"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
		WithArgs(sqlmock.AnyArg(), "stu-1", "class-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET available_seats = available_seats - 1 WHERE id = $1 AND available_seats > 0")).
		WithArgs("class-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var got RegistrationSnapshot
	err := repo.Register(context.Background(), "stu-1", "class-1", func(snapshot RegistrationSnapshot) error {
		got = snapshot
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, got.Target)
	assert.Equal(t, 3, got.Target.AvailableSeats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterVetoRollsBack(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	expectTargetLock(mock, "class-1", sqlmock.NewRows([]string{"id", "slot", "credits", "available_seats"}).
		AddRow("class-1", "A1", 4, 0))
	mock.ExpectQuery(`SELECT e\.class_id, c\.slot, co\.credits`).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "slot", "credits"}))
	mock.ExpectRollback()

	veto := assert.AnError
	err := repo.Register(context.Background(), "stu-1", "class-1", func(snapshot RegistrationSnapshot) error {
		return veto
	})
	assert.ErrorIs(t, err, veto)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterMissingClassYieldsNilTarget(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	expectTargetLock(mock, "missing", sqlmock.NewRows([]string{"id", "slot", "credits", "available_seats"}))
	mock.ExpectRollback()

	err := repo.Register(context.Background(), "stu-1", "missing", func(snapshot RegistrationSnapshot) error {
		assert.Nil(t, snapshot.Target)
		return assert.AnError
	})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterGuardedDecrementMissesRow(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	expectTargetLock(mock, "class-1", sqlmock.NewRows([]string{"id", "slot", "credits", "available_seats"}).
		AddRow("class-1", "A1", 4, 1))
	mock.ExpectQuery(`SELECT e\.class_id, c\.slot, co\.credits`).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "slot", "credits"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET available_seats")).
		WithArgs("class-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Register(context.Background(), "stu-1", "class-1", func(RegistrationSnapshot) error { return nil })
	assert.ErrorIs(t, err, ErrNoSeats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUniqueViolation(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	expectTargetLock(mock, "class-1", sqlmock.NewRows([]string{"id", "slot", "credits", "available_seats"}).
		AddRow("class-1", "A1", 4, 5))
	mock.ExpectQuery(`SELECT e\.class_id, c\.slot, co\.credits`).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "slot", "credits"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Register(context.Background(), "stu-1", "class-1", func(RegistrationSnapshot) error { return nil })
	assert.ErrorIs(t, err, ErrDuplicateEnrollment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func enrollmentRow(graded bool) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "student_id", "class_id", "marks", "grade", "classes_held", "classes_attended", "attendance_percentage", "created_at", "graded_at"})
	if graded {
		return rows.AddRow("enr-1", "stu-1", "class-1", 72.0, "B", 10, 9, 90.0, time.Now(), time.Now())
	}
	return rows.AddRow("enr-1", "stu-1", "class-1", nil, nil, 0, 0, 0.0, time.Now(), nil)
}

func TestUpdateMarksFirstGrading(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, student_id, class_id, marks, grade`).
		WithArgs("stu-1", "class-1").
		WillReturnRows(enrollmentRow(false))
	mock.ExpectQuery(`SELECT id, student_id, class_id, status, reason`).
		WithArgs("stu-1", "class-1", models.ReevaluationApproved).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "class_id", "status", "reason", "created_at", "decided_at"}))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET marks")).
		WithArgs("stu-1", "class-1", 92.0, models.GradeS, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateMarks(context.Background(), "stu-1", "class-1", func(enrollment *models.Enrollment, approved *models.ReevaluationRequest) (*GradeUpdate, error) {
		assert.Nil(t, enrollment.Grade)
		assert.Nil(t, approved)
		return &GradeUpdate{Marks: 92, Grade: models.GradeS}, nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMarksConsumesApprovedRequest(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, student_id, class_id, marks, grade`).
		WithArgs("stu-1", "class-1").
		WillReturnRows(enrollmentRow(true))
	mock.ExpectQuery(`SELECT id, student_id, class_id, status, reason`).
		WithArgs("stu-1", "class-1", models.ReevaluationApproved).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "class_id", "status", "reason", "created_at", "decided_at"}).
			AddRow("req-1", "stu-1", "class-1", models.ReevaluationApproved, "tally mismatch", time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET marks")).
		WithArgs("stu-1", "class-1", 85.0, models.GradeA, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reevaluation_requests SET status")).
		WithArgs("req-1", models.ReevaluationCompleted, models.ReevaluationApproved).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateMarks(context.Background(), "stu-1", "class-1", func(enrollment *models.Enrollment, approved *models.ReevaluationRequest) (*GradeUpdate, error) {
		require.NotNil(t, approved)
		return &GradeUpdate{Marks: 85, Grade: models.GradeA, ConsumeRequestID: approved.ID}, nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMarksConsumeRaceRollsBack(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, student_id, class_id, marks, grade`).
		WithArgs("stu-1", "class-1").
		WillReturnRows(enrollmentRow(true))
	mock.ExpectQuery(`SELECT id, student_id, class_id, status, reason`).
		WithArgs("stu-1", "class-1", models.ReevaluationApproved).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "class_id", "status", "reason", "created_at", "decided_at"}).
			AddRow("req-1", "stu-1", "class-1", models.ReevaluationApproved, "tally mismatch", time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET marks")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reevaluation_requests SET status")).
		WithArgs("req-1", models.ReevaluationCompleted, models.ReevaluationApproved).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateMarks(context.Background(), "stu-1", "class-1", func(enrollment *models.Enrollment, approved *models.ReevaluationRequest) (*GradeUpdate, error) {
		return &GradeUpdate{Marks: 85, Grade: models.GradeA, ConsumeRequestID: approved.ID}, nil
	})
	assert.ErrorIs(t, err, ErrRequestDecided)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementAttendance(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET classes_held = classes_held + 1 WHERE class_id = $1")).
		WithArgs("class-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET classes_attended = classes_attended + 1 WHERE class_id = $1 AND student_id <> ALL($2)")).
		WithArgs("class-1", pq.Array([]string{"stu-2"})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("SET attendance_percentage")).
		WithArgs("class-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	updated, err := repo.IncrementAttendance(context.Background(), "class-1", []string{"stu-2"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementAttendanceNobodyAbsent(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET classes_held = classes_held + 1 WHERE class_id = $1")).
		WithArgs("class-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET classes_attended = classes_attended + 1 WHERE class_id = $1")).
		WithArgs("class-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("SET attendance_percentage")).
		WithArgs("class-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	updated, err := repo.IncrementAttendance(context.Background(), "class-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRoster(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(`SELECT u\.id AS student_id, u\.full_name, u\.username`).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "full_name", "username", "marks", "grade", "attendance_percentage"}).
			AddRow("stu-1", "Asha K", "asha", 87.5, "A", 92.31).
			AddRow("stu-2", "Vikram S", "vikram", nil, nil, 80.0))

	roster, err := repo.ListRoster(context.Background(), "class-1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Nil(t, roster[1].Grade)
	require.NoError(t, mock.ExpectationsWereMet())
}
