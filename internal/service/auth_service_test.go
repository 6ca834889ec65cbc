package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pranav-ms/uni-records-api/internal/models"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type fakeAuthAccounts struct {
	users map[string]*models.User
}

func (f *fakeAuthAccounts) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	accounts := &fakeAuthAccounts{users: map[string]*models.User{
		"asha": {ID: "stu-1", Username: "asha", PasswordHash: string(hash), Role: models.RoleStudent, FullName: "Asha K"},
	}}
	return NewAuthService(accounts, nil, zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "uni-records-api",
	})
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newAuthFixture(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "asha", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "stu-1", res.User.ID)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "stu-1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "uni-records-api", claims.Issuer)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "asha", Password: "wrong"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.ValidateToken("not-a-token")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newAuthFixture(t)
	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "asha", Password: "correct horse"})
	require.NoError(t, err)

	other := NewAuthService(&fakeAuthAccounts{}, nil, zap.NewNop(), AuthConfig{Secret: "different", Expiration: time.Hour})
	_, err = other.ValidateToken(res.AccessToken)
	assert.Error(t, err)
}
