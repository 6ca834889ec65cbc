package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pranav-ms/uni-records-api/internal/repository"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
	"github.com/pranav-ms/uni-records-api/pkg/lock"
)

type registrationLedger interface {
	Register(ctx context.Context, studentID, classID string, decide func(repository.RegistrationSnapshot) error) error
}

type timetableInvalidator interface {
	Invalidate(ctx context.Context, studentID string)
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	ClassID string `json:"class_id" validate:"required"`
}

// RegistrationService is the enrollment coordinator: it makes the
// evaluate-then-commit sequence indivisible per class, so two concurrent
// requests for the same class never both consume the last seat, and
// indivisible per student, so one student's parallel attempts at different
// classes cannot slip past the slot-clash and credit-ceiling checks.
type RegistrationService struct {
	ledger       registrationLedger
	classLocks   *lock.KeyedMutex
	studentLocks *lock.KeyedMutex
	timetables   timetableInvalidator
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewRegistrationService constructs RegistrationService.
func NewRegistrationService(ledger registrationLedger, timetables timetableInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		ledger:       ledger,
		classLocks:   lock.NewKeyedMutex(),
		studentLocks: lock.NewKeyedMutex(),
		timetables:   timetables,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
	}
}

// Register enrolls the student into the class or returns the first failed
// eligibility check. The per-class lock serializes attempts on one class
// while unrelated classes proceed concurrently; the per-student lock
// serializes one student's attempts across classes, so the snapshot a
// decision reads always includes the student's latest committed enrollment.
// The ledger transaction re-reads the authoritative snapshot under the
// class row lock, so the decision and the seat decrement cannot be split
// by a concurrent writer.
func (s *RegistrationService) Register(ctx context.Context, studentID, classID string) error {
	if classID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "class id is required")
	}

	err := s.registerLocked(ctx, studentID, classID)
	s.observe(err)
	if err != nil {
		return err
	}

	// Cache invalidation is deliberately outside the exclusive region:
	// nothing slow runs while the class lock is held.
	if s.timetables != nil {
		s.timetables.Invalidate(ctx, studentID)
	}
	s.logger.Info("student registered",
		zap.String("student_id", studentID),
		zap.String("class_id", classID),
	)
	return nil
}

func (s *RegistrationService) registerLocked(ctx context.Context, studentID, classID string) error {
	// Fixed acquisition order (class, then student) across all callers, so
	// two registrations can never hold one lock each and wait on the other.
	releaseClass, err := s.classLocks.Lock(ctx, classID)
	if err != nil {
		// Timed out before acquiring anything: no partial effect.
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration cancelled while waiting for class")
	}
	defer releaseClass()

	releaseStudent, err := s.studentLocks.Lock(ctx, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration cancelled while waiting for student")
	}
	defer releaseStudent()

	err = s.ledger.Register(ctx, studentID, classID, func(snapshot repository.RegistrationSnapshot) error {
		return evaluateEligibility(classID, snapshot)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicateEnrollment):
		// Unique constraint is the second line of defense; a concurrent
		// winner for the same pair surfaces as a plain rejection.
		return appErrors.ErrAlreadyEnrolled
	case errors.Is(err, repository.ErrNoSeats):
		return appErrors.ErrClassFull
	default:
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration failed")
	}
}

func (s *RegistrationService) observe(err error) {
	if s.metrics == nil {
		return
	}
	outcome := "admitted"
	if err != nil {
		outcome = appErrors.FromError(err).Code
	}
	s.metrics.ObserveRegistration(outcome)
}
