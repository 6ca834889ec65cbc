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

type catalogStore interface {
	FindCourseByCode(ctx context.Context, code string) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	FindClassByID(ctx context.Context, id string) (*models.Class, error)
	CreateClass(ctx context.Context, class *models.Class) error
	FacultyTeachesSlot(ctx context.Context, facultyID, slot string) (bool, error)
	ListClasses(ctx context.Context) ([]models.ClassDetail, error)
}

type accountReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CreateCourseRequest is the admin payload for adding a course.
type CreateCourseRequest struct {
	Code    string `json:"code" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Credits int    `json:"credits" validate:"required,gte=1,lte=27"`
}

// OpenClassRequest is the admin payload for opening a class of a course.
type OpenClassRequest struct {
	CourseCode string `json:"course_code" validate:"required"`
	FacultyID  string `json:"faculty_id" validate:"required"`
	Slot       string `json:"slot" validate:"required"`
	TotalSeats int    `json:"total_seats" validate:"required,gte=1"`
}

// CatalogService manages the course and class catalog.
type CatalogService struct {
	catalog   catalogStore
	accounts  accountReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(catalog catalogStore, accounts accountReader, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{catalog: catalog, accounts: accounts, validator: validate, logger: logger}
}

// CreateCourse adds a course to the catalog. Course codes are unique.
func (s *CatalogService) CreateCourse(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{Code: req.Code, Name: req.Name, Credits: req.Credits}
	if err := s.catalog.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicateCourse) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course code already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.logger.Info("course created", zap.String("code", course.Code), zap.Int("credits", course.Credits))
	return course, nil
}

// OpenClass opens a class of an existing course taught by an existing faculty
// member in a known slot. A faculty member cannot teach two classes in the
// same slot.
func (s *CatalogService) OpenClass(ctx context.Context, req OpenClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if !KnownSlot(req.Slot) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown slot code")
	}

	if _, err := s.catalog.FindCourseByCode(ctx, req.CourseCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	faculty, err := s.accounts.FindByID(ctx, req.FacultyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	if faculty.Role != models.RoleFaculty {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assigned user is not faculty")
	}

	busy, err := s.catalog.FacultyTeachesSlot(ctx, req.FacultyID, req.Slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check faculty schedule")
	}
	if busy {
		return nil, appErrors.Clone(appErrors.ErrConflict, "faculty already teaches a class in this slot")
	}

	class := &models.Class{
		CourseCode: req.CourseCode,
		FacultyID:  req.FacultyID,
		Slot:       req.Slot,
		TotalSeats: req.TotalSeats,
	}
	if err := s.catalog.CreateClass(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open class")
	}
	s.logger.Info("class opened",
		zap.String("class_id", class.ID),
		zap.String("course_code", class.CourseCode),
		zap.String("slot", class.Slot),
		zap.Int("seats", class.TotalSeats),
	)
	return class, nil
}

// ListClasses returns the open class catalog.
func (s *CatalogService) ListClasses(ctx context.Context) ([]models.ClassDetail, error) {
	classes, err := s.catalog.ListClasses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}
