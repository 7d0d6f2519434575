package service

import (
	"testing"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email, password string, active bool) *model.User {
	t.Helper()
	user := &model.User{Email: email, FullName: "Test User", IsActive: active}
	require.NoError(t, user.SetPassword(password))
	if !active {
		// default:true tag would override a zero-value insert
		require.NoError(t, db.Create(user).Error)
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
		return user
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "staff@example.com", "secret123", true)

	resp, err := svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "staff@example.com", resp.User.Email)

	_, err = svc.Login("staff@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "gone@example.com", "secret123", false)

	_, err := svc.Login("gone@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLoginRotatesTokenVersion(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "staff@example.com", "secret123", true)

	first, err := svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)

	// A second login invalidates the first session's token
	_, err = svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(first.Token)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "staff@example.com", "secret123", true)

	resp, err := svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)

	validated, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", validated.User.Email)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestResetPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))
	seedUser(t, db, "staff@example.com", "secret123", true)

	require.NoError(t, svc.ResetPassword("staff@example.com", "secret123", "newpass456"))

	_, err := svc.Login("staff@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("staff@example.com", "newpass456")
	assert.NoError(t, err)

	err = svc.ResetPassword("staff@example.com", "wrong", "whatever")
	assert.ErrorIs(t, err, ErrWrongPassword)
	err = svc.ResetPassword("nobody@example.com", "x", "y")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
