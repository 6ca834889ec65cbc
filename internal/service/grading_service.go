package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pranav-ms/uni-records-api/internal/models"
	"github.com/pranav-ms/uni-records-api/internal/repository"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type gradeLedger interface {
	UpdateMarks(ctx context.Context, studentID, classID string, decide func(enrollment *models.Enrollment, approved *models.ReevaluationRequest) (*repository.GradeUpdate, error)) error
	IncrementAttendance(ctx context.Context, classID string, absentIDs []string) (int, error)
	ListRoster(ctx context.Context, classID string) ([]models.RosterEntry, error)
}

type classReader interface {
	FindClassByID(ctx context.Context, id string) (*models.Class, error)
}

// WriteMarksRequest is the faculty marks-upload payload.
type WriteMarksRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	ClassID   string  `json:"class_id" validate:"required"`
	Marks     float64 `json:"marks" validate:"gte=0,lte=100"`
}

// RecordAttendanceRequest marks one held session for a whole class roster.
type RecordAttendanceRequest struct {
	ClassID          string   `json:"class_id" validate:"required"`
	AbsentStudentIDs []string `json:"absent_student_ids"`
}

// GradingService governs the grade state machine: first grading is always
// allowed, a set grade is locked until a re-evaluation request for the pair
// is approved, and writing the new grade consumes that approval.
type GradingService struct {
	ledger    gradeLedger
	classes   classReader
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradingService constructs GradingService.
func NewGradingService(ledger gradeLedger, classes classReader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GradingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradingService{ledger: ledger, classes: classes, metrics: metrics, validator: validate, logger: logger}
}

// letterGrade maps marks to a letter using fixed thresholds.
func letterGrade(marks float64) models.Grade {
	switch {
	case marks >= 90:
		return models.GradeS
	case marks >= 80:
		return models.GradeA
	case marks >= 70:
		return models.GradeB
	case marks >= 60:
		return models.GradeC
	case marks >= 50:
		return models.GradeD
	default:
		return models.GradeF
	}
}

// WriteMarks records marks for the (student, class) pair and derives the
// letter grade. Overwriting a non-null grade requires an approved
// re-evaluation request, which is flipped to completed in the same
// transaction as the overwrite.
func (s *GradingService) WriteMarks(ctx context.Context, facultyID string, req WriteMarksRequest) (models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	if err := s.requireClassOwner(ctx, facultyID, req.ClassID); err != nil {
		return "", err
	}

	var written models.Grade
	err := s.ledger.UpdateMarks(ctx, req.StudentID, req.ClassID, func(enrollment *models.Enrollment, approved *models.ReevaluationRequest) (*repository.GradeUpdate, error) {
		update := &repository.GradeUpdate{Marks: req.Marks, Grade: letterGrade(req.Marks)}
		if enrollment.Grade != nil {
			if approved == nil {
				return nil, appErrors.ErrGradeLocked
			}
			update.ConsumeRequestID = approved.ID
		}
		written = update.Grade
		return update, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		return "", appErrors.ErrNotEnrolled
	case errors.Is(err, repository.ErrRequestDecided):
		// The approval was consumed or withdrawn between snapshot and
		// commit; treat as locked so the caller re-checks.
		return "", appErrors.ErrGradeLocked
	default:
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return "", appErr
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write marks")
	}

	if s.metrics != nil {
		s.metrics.ObserveGradeWrite(string(written))
	}
	s.logger.Info("marks written",
		zap.String("faculty_id", facultyID),
		zap.String("student_id", req.StudentID),
		zap.String("class_id", req.ClassID),
		zap.String("grade", string(written)),
	)
	return written, nil
}

// RecordAttendance counts one held session for every enrollment in the class
// and one attended session for everyone not listed absent. The increments
// are monotonic; callers must deliver each session at most once.
func (s *GradingService) RecordAttendance(ctx context.Context, facultyID string, req RecordAttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if err := s.requireClassOwner(ctx, facultyID, req.ClassID); err != nil {
		return err
	}

	updated, err := s.ledger.IncrementAttendance(ctx, req.ClassID, req.AbsentStudentIDs)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	if s.metrics != nil {
		s.metrics.ObserveAttendanceSession(updated)
	}
	s.logger.Info("attendance recorded",
		zap.String("class_id", req.ClassID),
		zap.Int("enrollments", updated),
		zap.Int("absent", len(req.AbsentStudentIDs)),
	)
	return nil
}

// Roster returns the class roster for its faculty.
func (s *GradingService) Roster(ctx context.Context, facultyID, classID string) ([]models.RosterEntry, error) {
	if err := s.requireClassOwner(ctx, facultyID, classID); err != nil {
		return nil, err
	}
	roster, err := s.ledger.ListRoster(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	return roster, nil
}

func (s *GradingService) requireClassOwner(ctx context.Context, facultyID, classID string) error {
	class, err := s.classes.FindClassByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrClassNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	if class.FacultyID != facultyID {
		return appErrors.Clone(appErrors.ErrForbidden, "you do not teach this class")
	}
	return nil
}
