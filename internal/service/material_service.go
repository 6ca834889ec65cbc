package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranav-ms/uni-records-api/internal/models"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type materialStore interface {
	Create(ctx context.Context, material *models.CourseMaterial) error
	ListByCourse(ctx context.Context, courseCode string) ([]models.CourseMaterial, error)
}

type courseReader interface {
	FindCourseByCode(ctx context.Context, code string) (*models.Course, error)
}

type fileStore interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Path(filename string) string
}

// UploadMaterialRequest is the faculty payload for sharing a file.
type UploadMaterialRequest struct {
	CourseCode string `validate:"required"`
	Title      string `validate:"required"`
	Filename   string `validate:"required"`
	Size       int64  `validate:"gte=0"`
}

// MaterialService stores shared course files on local storage and their
// metadata in the database.
type MaterialService struct {
	materials   materialStore
	courses     courseReader
	files       fileStore
	maxFileSize int64
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewMaterialService constructs MaterialService.
func NewMaterialService(materials materialStore, courses courseReader, files fileStore, maxFileSize int64, validate *validator.Validate, logger *zap.Logger) *MaterialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialService{
		materials:   materials,
		courses:     courses,
		files:       files,
		maxFileSize: maxFileSize,
		validator:   validate,
		logger:      logger,
	}
}

// Upload stores the file and records its metadata for the course.
func (s *MaterialService) Upload(ctx context.Context, facultyID string, req UploadMaterialRequest, content io.Reader) (*models.CourseMaterial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}
	if s.maxFileSize > 0 && req.Size > s.maxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}

	if _, err := s.courses.FindCourseByCode(ctx, req.CourseCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	// Stored names are namespaced per course and randomized so uploads
	// cannot collide or escape the storage root.
	stored := filepath.Join(req.CourseCode, uuid.NewString()+filepath.Ext(filepath.Base(req.Filename)))
	path, err := s.files.SaveStream(stored, content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}

	material := &models.CourseMaterial{
		CourseCode: req.CourseCode,
		FacultyID:  facultyID,
		Title:      req.Title,
		FilePath:   path,
	}
	if err := s.materials.Create(ctx, material); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record material")
	}

	s.logger.Info("material uploaded",
		zap.String("course_code", req.CourseCode),
		zap.String("faculty_id", facultyID),
		zap.String("material_id", material.ID),
	)
	return material, nil
}

// ListByCourse returns the materials shared for a course, newest first.
func (s *MaterialService) ListByCourse(ctx context.Context, courseCode string) ([]models.CourseMaterial, error) {
	materials, err := s.materials.ListByCourse(ctx, courseCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list materials")
	}
	return materials, nil
}

// FilePath resolves the on-disk location of a stored material file.
func (s *MaterialService) FilePath(material *models.CourseMaterial) string {
	return s.files.Path(material.FilePath)
}
