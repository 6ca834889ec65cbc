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

type reevaluationStore interface {
	HasPending(ctx context.Context, studentID, classID string) (bool, error)
	Create(ctx context.Context, request *models.ReevaluationRequest) error
	Decide(ctx context.Context, requestID string, outcome models.ReevaluationStatus) error
	ListByStatus(ctx context.Context, status models.ReevaluationStatus) ([]models.ReevaluationRequest, error)
}

type enrollmentReader interface {
	FindByStudentAndClass(ctx context.Context, studentID, classID string) (*models.Enrollment, error)
}

// SubmitReevaluationRequest is the student payload.
type SubmitReevaluationRequest struct {
	ClassID string `json:"class_id" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
}

// DecideReevaluationRequest is the admin payload.
type DecideReevaluationRequest struct {
	RequestID string `json:"request_id" validate:"required"`
	Outcome   string `json:"outcome" validate:"required"`
}

// ReevaluationService drives the request lifecycle that can reopen a locked
// grade: pending → approved/rejected, with approved consumed by the next
// marks overwrite.
type ReevaluationService struct {
	requests    reevaluationStore
	enrollments enrollmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewReevaluationService constructs ReevaluationService.
func NewReevaluationService(requests reevaluationStore, enrollments enrollmentReader, validate *validator.Validate, logger *zap.Logger) *ReevaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReevaluationService{requests: requests, enrollments: enrollments, validator: validate, logger: logger}
}

// Submit files a pending request for the student's graded enrollment.
func (s *ReevaluationService) Submit(ctx context.Context, studentID string, req SubmitReevaluationRequest) (*models.ReevaluationRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid re-evaluation payload")
	}

	enrollment, err := s.enrollments.FindByStudentAndClass(ctx, studentID, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotEnrolled
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if enrollment.Grade == nil {
		return nil, appErrors.ErrNoGradeYet
	}

	pending, err := s.requests.HasPending(ctx, studentID, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pending requests")
	}
	if pending {
		return nil, appErrors.ErrDuplicatePending
	}

	request := &models.ReevaluationRequest{StudentID: studentID, ClassID: req.ClassID, Reason: req.Reason}
	if err := s.requests.Create(ctx, request); err != nil {
		// A concurrent submit that passed the pre-check loses here on the
		// partial unique index over pending rows.
		if errors.Is(err, repository.ErrDuplicatePendingRequest) {
			return nil, appErrors.ErrDuplicatePending
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create request")
	}
	s.logger.Info("re-evaluation submitted",
		zap.String("student_id", studentID),
		zap.String("class_id", req.ClassID),
		zap.String("request_id", request.ID),
	)
	return request, nil
}

// Decide approves or rejects a pending request. Decided requests are
// terminal for this operation; only a marks overwrite may move an approved
// request further (to completed).
func (s *ReevaluationService) Decide(ctx context.Context, req DecideReevaluationRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}

	outcome := models.ReevaluationStatus(req.Outcome)
	if outcome != models.ReevaluationApproved && outcome != models.ReevaluationRejected {
		return appErrors.ErrInvalidOutcome
	}

	err := s.requests.Decide(ctx, req.RequestID, outcome)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "request not found")
	case errors.Is(err, repository.ErrRequestDecided):
		return appErrors.Clone(appErrors.ErrConflict, "request already decided")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decide request")
	}

	s.logger.Info("re-evaluation decided",
		zap.String("request_id", req.RequestID),
		zap.String("outcome", string(outcome)),
	)
	return nil
}

// ListPending returns requests awaiting a decision, oldest first.
func (s *ReevaluationService) ListPending(ctx context.Context) ([]models.ReevaluationRequest, error) {
	requests, err := s.requests.ListByStatus(ctx, models.ReevaluationPending)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	return requests, nil
}
