package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/models"
	"festive-births-svc/internal/repository"
	"festive-births-svc/internal/token"
	"festive-births-svc/pkg/logger"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	repo.add(&models.User{
		IsActive: true, MustChangePassword: true, Password: hashed(t, "Password1"),
		Profile: &models.Profile{PersalNumber: "12345678", District: "Amathole DM"},
	}, models.RoleUser)
	repo.add(&models.User{Username: "root", IsSuperuser: true, IsActive: true, Password: hashed(t, "s3cret-root")})
	repo.add(&models.User{Username: "plain", IsActive: true, Password: hashed(t, "plainpass")}, models.RoleUser)
	repo.add(&models.User{
		IsActive: false, Password: hashed(t, "Password1"),
		Profile: &models.Profile{PersalNumber: "87654321", District: "Amathole DM"},
	}, models.RoleUser)

	svc := NewAuthService(repo, repository.NewMemoryRevocationStore(), token.NewManager("test-secret", 30*time.Minute), "Password1", nil, logger.NewNop())
	return svc, repo
}

func TestLogin_ByPersal(t *testing.T) {
	svc, repo := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), "12345678", "Password1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.MustChangePassword)
	assert.NotNil(t, repo.users[1].LastLogin)
}

func TestLogin_Rejections(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "12345678", "nope"},
		{"unknown persal", "99999999", "Password1"},
		{"username login for non superuser", "plain", "plainpass"},
		{"inactive account", "87654321", "Password1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_SuperuserByUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), "root", "s3cret-root")
	require.NoError(t, err)
	assert.False(t, resp.MustChangePassword)
}

func TestAuthenticate_AndLogout(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "root", "s3cret-root")
	require.NoError(t, err)

	user, claims, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "root", user.Username)

	require.NoError(t, svc.Logout(ctx, claims))

	_, _, err = svc.Authenticate(ctx, resp.Token)
	assert.True(t, IsTokenError(err))
}

func TestAuthenticate_Garbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.True(t, IsTokenError(err))
}

func TestChangePassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()
	actor := access.Actor{UserID: 1, Roles: []string{models.RoleUser}}

	t.Run("rejects bad input", func(t *testing.T) {
		err := svc.ChangePassword(ctx, actor, PasswordChangeInput{
			CurrentPassword: "wrong",
			NewPassword:     "short",
			ConfirmPassword: "different",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "current_password")
		assert.Contains(t, verr.Fields, "new_password")
		assert.Contains(t, verr.Fields, "confirm_password")
	})

	t.Run("rejects the default password", func(t *testing.T) {
		repo.users[1].Password = hashed(t, "Temporary99")
		err := svc.ChangePassword(ctx, actor, PasswordChangeInput{
			CurrentPassword: "Temporary99",
			NewPassword:     "Password1",
			ConfirmPassword: "Password1",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "new_password")
	})

	t.Run("clears the temporary flag", func(t *testing.T) {
		repo.users[1].Password = hashed(t, "Password1")
		err := svc.ChangePassword(ctx, actor, PasswordChangeInput{
			CurrentPassword: "Password1",
			NewPassword:     "Festive2025!",
			ConfirmPassword: "Festive2025!",
		})
		require.NoError(t, err)
		assert.False(t, repo.users[1].MustChangePassword)

		_, err = svc.Login(ctx, "12345678", "Festive2025!")
		assert.NoError(t, err)
	})
}
