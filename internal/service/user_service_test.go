package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pranav-ms/uni-records-api/internal/models"
	"github.com/pranav-ms/uni-records-api/internal/repository"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type fakeAccountStore struct {
	users map[string]*models.User
	links map[string]string
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		users: make(map[string]*models.User),
		links: make(map[string]string),
	}
}

func (f *fakeAccountStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeAccountStore) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeAccountStore) LinkParent(ctx context.Context, parentID, studentID string) error {
	f.links[parentID] = studentID
	return nil
}

func (f *fakeAccountStore) FindChildID(ctx context.Context, parentID string) (string, error) {
	studentID, ok := f.links[parentID]
	if !ok {
		return "", sql.ErrNoRows
	}
	return studentID, nil
}

func TestCreateUserHashesPassword(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewUserService(store, nil, zap.NewNop())

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "asha", Password: "correct horse", FullName: "Asha K", Role: "student",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewUserService(store, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "asha", Password: "correct horse", FullName: "Asha K", Role: "student",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserRequest{
		Username: "asha", Password: "other password", FullName: "Asha Two", Role: "student",
	})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newFakeAccountStore(), nil, zap.NewNop())
	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "asha", Password: "correct horse", FullName: "Asha K", Role: "registrar",
	})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateParentLinksStudent(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewUserService(store, nil, zap.NewNop())

	student, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "asha", Password: "correct horse", FullName: "Asha K", Role: "student",
	})
	require.NoError(t, err)

	parent, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "ravi", Password: "another pass", FullName: "Ravi K", Role: "parent",
		ChildStudentID: student.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, student.ID, store.links[parent.ID])

	resolved, err := svc.ChildOf(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, resolved)
}

func TestCreateParentRequiresStudentChild(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewUserService(store, nil, zap.NewNop())

	t.Run("missing child id", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateUserRequest{
			Username: "ravi", Password: "another pass", FullName: "Ravi K", Role: "parent",
		})
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("child not found", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateUserRequest{
			Username: "ravi", Password: "another pass", FullName: "Ravi K", Role: "parent",
			ChildStudentID: "missing",
		})
		assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	})

	t.Run("child is not a student", func(t *testing.T) {
		faculty, err := svc.Create(context.Background(), CreateUserRequest{
			Username: "drrao", Password: "teaching pass", FullName: "Dr. Rao", Role: "faculty",
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateUserRequest{
			Username: "ravi", Password: "another pass", FullName: "Ravi K", Role: "parent",
			ChildStudentID: faculty.ID,
		})
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})
}

func TestChildOfUnlinkedParent(t *testing.T) {
	svc := NewUserService(newFakeAccountStore(), nil, zap.NewNop())
	_, err := svc.ChildOf(context.Background(), "parent-1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
