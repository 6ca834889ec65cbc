package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pranav-ms/uni-records-api/internal/models"
)

// ErrDuplicateUsername reports a second account with the same username.
var ErrDuplicateUsername = errors.New("duplicate username")

// UserRepository handles account persistence.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns the account with the given username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, role, full_name, created_at FROM users WHERE username = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the account with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, role, full_name, created_at FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO users (id, username, password_hash, role, full_name, created_at)
        VALUES (:id, :username, :password_hash, :role, :full_name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// LinkParent binds a parent account to a student account.
func (r *UserRepository) LinkParent(ctx context.Context, parentID, studentID string) error {
	const query = `INSERT INTO parent_student_map (parent_id, student_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, parentID, studentID); err != nil {
		return fmt.Errorf("link parent: %w", err)
	}
	return nil
}

// FindChildID returns the student bound to a parent account.
func (r *UserRepository) FindChildID(ctx context.Context, parentID string) (string, error) {
	const query = `SELECT student_id FROM parent_student_map WHERE parent_id = $1`
	var studentID string
	if err := r.db.GetContext(ctx, &studentID, query, parentID); err != nil {
		return "", err
	}
	return studentID, nil
}
