package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pranav-ms/uni-records-api/internal/models"
	"github.com/pranav-ms/uni-records-api/internal/repository"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type accountStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	LinkParent(ctx context.Context, parentID, studentID string) error
	FindChildID(ctx context.Context, parentID string) (string, error)
}

// CreateUserRequest is the admin payload for provisioning an account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin faculty student parent"`
	// ChildStudentID binds a parent account to its student; required for
	// the parent role, ignored otherwise.
	ChildStudentID string `json:"child_student_id"`
}

// UserService provisions accounts and parent-student links.
type UserService struct {
	accounts  accountStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(accounts accountStore, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{accounts: accounts, validator: validate, logger: logger}
}

// Create provisions an account. Parent accounts must name an existing
// student; the link is stored alongside the account.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	role := models.UserRole(req.Role)
	if role == models.RoleParent {
		if req.ChildStudentID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "parent accounts require child_student_id")
		}
		child, err := s.accounts.FindByID(ctx, req.ChildStudentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "child student not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load child account")
		}
		if child.Role != models.RoleStudent {
			return nil, appErrors.Clone(appErrors.ErrValidation, "child account is not a student")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     req.FullName,
	}
	if err := s.accounts.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	if role == models.RoleParent {
		if err := s.accounts.LinkParent(ctx, user.ID, req.ChildStudentID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link parent to student")
		}
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// ChildOf resolves the student bound to a parent account.
func (s *UserService) ChildOf(ctx context.Context, parentID string) (string, error) {
	studentID, err := s.accounts.FindChildID(ctx, parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "no student linked to this account")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve linked student")
	}
	return studentID, nil
}
