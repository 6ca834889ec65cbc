package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pranav-ms/uni-records-api/internal/models"
)

// MaterialRepository stores course material metadata; the files themselves
// live on local storage.
type MaterialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository constructs the repository.
func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create persists a material record.
func (r *MaterialRepository) Create(ctx context.Context, material *models.CourseMaterial) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	if material.UploadedAt.IsZero() {
		material.UploadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO course_materials (id, course_code, faculty_id, title, file_path, uploaded_at)
        VALUES (:id, :course_code, :faculty_id, :title, :file_path, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// ListByCourse returns materials shared for the course, newest first.
func (r *MaterialRepository) ListByCourse(ctx context.Context, courseCode string) ([]models.CourseMaterial, error) {
	const query = `SELECT id, course_code, faculty_id, title, file_path, uploaded_at
        FROM course_materials WHERE course_code = $1 ORDER BY uploaded_at DESC`
	var materials []models.CourseMaterial
	if err := r.db.SelectContext(ctx, &materials, query, courseCode); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}
