package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pranav-ms/uni-records-api/internal/models"
)

// ErrDuplicateCourse reports a second course with the same code.
var ErrDuplicateCourse = errors.New("duplicate course code")

// CatalogRepository is the read-mostly store of courses and open classes.
// Seat counts live on the class row but are mutated only through the
// enrollment ledger's registration transaction.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindCourseByCode returns the course for the unique code.
func (r *CatalogRepository) FindCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	const query = `SELECT code, name, credits FROM courses WHERE code = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, code); err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse persists a new course.
func (r *CatalogRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (code, name, credits) VALUES (:code, :name, :credits)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCourse
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindClassByID returns the class row.
func (r *CatalogRepository) FindClassByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT id, course_code, faculty_id, slot, total_seats, available_seats FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// CreateClass opens a class with all seats available.
func (r *CatalogRepository) CreateClass(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	class.AvailableSeats = class.TotalSeats
	const query = `INSERT INTO classes (id, course_code, faculty_id, slot, total_seats, available_seats)
        VALUES (:id, :course_code, :faculty_id, :slot, :total_seats, :available_seats)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// FacultyTeachesSlot reports whether the faculty already has a class in the slot.
func (r *CatalogRepository) FacultyTeachesSlot(ctx context.Context, facultyID, slot string) (bool, error) {
	const query = `SELECT 1 FROM classes WHERE faculty_id = $1 AND slot = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, facultyID, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check faculty slot: %w", err)
	}
	return true, nil
}

// ListClasses returns all open classes with course and faculty context.
func (r *CatalogRepository) ListClasses(ctx context.Context) ([]models.ClassDetail, error) {
	const query = `SELECT c.id, c.course_code, c.faculty_id, c.slot, c.total_seats, c.available_seats,
        co.name AS course_name, co.credits, u.full_name AS faculty_name
        FROM classes c
        JOIN courses co ON co.code = c.course_code
        JOIN users u ON u.id = c.faculty_id
        ORDER BY c.course_code, c.slot`
	var classes []models.ClassDetail
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}
