package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/metrics"
	"festive-births-svc/internal/models"
	"festive-births-svc/internal/models/response"
	"festive-births-svc/internal/repository"
	"festive-births-svc/internal/token"
	"festive-births-svc/pkg/logger"
)

// MinPasswordLength is the shortest password accepted on change
const MinPasswordLength = 8

// PasswordChangeInput is a password change request
type PasswordChangeInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// AuthService interface defines authentication methods
type AuthService interface {
	Login(ctx context.Context, username, password string) (*response.LoginResponse, error)
	Authenticate(ctx context.Context, tokenString string) (*models.User, *token.Claims, error)
	Logout(ctx context.Context, claims *token.Claims) error
	ChangePassword(ctx context.Context, actor access.Actor, in PasswordChangeInput) error
	Me(ctx context.Context, userID uint) (*models.UserDetail, error)
}

// authService implements AuthService interface
type authService struct {
	userRepo        repository.UserRepository
	revocations     repository.RevocationStore
	tokens          *token.Manager
	defaultPassword string
	metrics         *metrics.Metrics
	logger          *logger.Logger
	now             func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	revocations repository.RevocationStore,
	tokens *token.Manager,
	defaultPassword string,
	m *metrics.Metrics,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		revocations:     revocations,
		tokens:          tokens,
		defaultPassword: defaultPassword,
		metrics:         m,
		logger:          logger,
		now:             time.Now,
	}
}

// Login verifies a persal number and password. Superusers without a profile log in by username.
func (s *authService) Login(ctx context.Context, username, password string) (*response.LoginResponse, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		s.metrics.IncrementLogin("failure")
		return nil, err
	}

	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.metrics.IncrementLogin("failure")
		s.logger.WithField("username", username).Warn("Login rejected")
		return nil, ErrInvalidCredentials
	}

	signed, claims, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to issue token")
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	s.metrics.IncrementLogin("success")
	s.logger.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User logged in")

	return &response.LoginResponse{
		Token:              signed,
		ExpiresAt:          claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
		MustChangePassword: user.MustChangePassword,
		User:               models.NewUserDetail(user),
	}, nil
}

func (s *authService) lookup(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByPersal(ctx, username)
	if err == nil {
		return user, nil
	}
	if translateError(err) != ErrNotFound {
		return nil, err
	}

	user, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if translateError(err) == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsSuperuser {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate resolves a bearer token to an active user
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, *token.Claims, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, token.ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if translateError(err) == ErrNotFound {
			return nil, nil, token.ErrInvalidToken
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, token.ErrInvalidToken
	}
	return user, claims, nil
}

// Logout revokes the token until it would have expired
func (s *authService) Logout(ctx context.Context, claims *token.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.WithError(err).Error("Failed to revoke token")
		return err
	}
	s.logger.WithField("username", claims.Username).Info("User logged out")
	return nil
}

// ChangePassword replaces the actor's password and clears the temporary password flag
func (s *authService) ChangePassword(ctx context.Context, actor access.Actor, in PasswordChangeInput) error {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return translateError(err)
	}

	verr := &ValidationError{}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)) != nil {
		verr.Add("current_password", "Your old password was entered incorrectly.")
	}
	switch {
	case len(in.NewPassword) < MinPasswordLength:
		verr.Add("new_password", "This password is too short. It must contain at least 8 characters.")
	case in.NewPassword == in.CurrentPassword:
		verr.Add("new_password", "The new password must differ from the current password.")
	case in.NewPassword == s.defaultPassword:
		verr.Add("new_password", "The default password cannot be reused.")
	}
	if in.NewPassword != in.ConfirmPassword {
		verr.Add("confirm_password", "The two password fields didn't match.")
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash), false); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to update password")
		return err
	}

	s.logger.WithField("user_id", user.ID).Info("Password changed")
	return nil
}

// Me returns the current user's details
func (s *authService) Me(ctx context.Context, userID uint) (*models.UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateError(err)
	}
	detail := models.NewUserDetail(user)
	return &detail, nil
}

// IsTokenError reports whether err comes from a bad or revoked session token
func IsTokenError(err error) bool {
	return errors.Is(err, token.ErrInvalidToken)
}
