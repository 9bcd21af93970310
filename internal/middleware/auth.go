package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/models"
	"festive-births-svc/internal/repository"
	"festive-births-svc/internal/token"
	"festive-births-svc/pkg/logger"
	"festive-births-svc/pkg/utils"
)

const (
	actorKey      = "actor"
	claimsKey     = "claims"
	mustChangeKey = "must_change_password"
)

// Authenticator resolves a bearer token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*models.User, *token.Claims, error)
}

// Authenticate requires a valid bearer token and stores the acting user on the context
func Authenticate(auth Authenticator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			utils.UnauthorizedResponse(c, "Authentication required")
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			log.WithError(err).Debug("Token rejected")
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			return
		}

		SetActor(c, access.ActorFromUser(user))
		c.Set(claimsKey, claims)
		c.Set(mustChangeKey, user.MustChangePassword)
		c.Next()
	}
}

// SetActor stores the acting user on the context
func SetActor(c *gin.Context, actor access.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom returns the acting user stored by Authenticate
func ActorFrom(c *gin.Context) (access.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return access.Actor{}, false
	}
	actor, ok := v.(access.Actor)
	return actor, ok
}

// ClaimsFrom returns the session token claims stored by Authenticate
func ClaimsFrom(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}

// RequirePasswordChanged blocks accounts still on the temporary password.
// The allowed routes let them change it, log out or read their own details.
func RequirePasswordChanged(allowed ...string) gin.HandlerFunc {
	allow := make(map[string]bool, len(allowed))
	for _, route := range allowed {
		allow[route] = true
	}
	return func(c *gin.Context) {
		if c.GetBool(mustChangeKey) && !allow[c.FullPath()] {
			utils.ForbiddenResponse(c, "You must change your password before continuing")
			return
		}
		c.Next()
	}
}

// TrackLastSeen records a presence marker for every authenticated non-superuser.
// Failures are logged and never fail the request.
func TrackLastSeen(store repository.PresenceStore, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := ActorFrom(c); ok && !actor.Superuser {
			if err := store.Touch(c.Request.Context(), actor.UserID, time.Now()); err != nil {
				log.WithError(err).WithField("user_id", actor.UserID).Debug("Failed to record presence")
			}
		}
		c.Next()
	}
}

// RequireModify allows accounts that may change deliveries
func RequireModify() gin.HandlerFunc {
	return requireCapability(access.Actor.CanModify, "You do not have permission to modify deliveries")
}

// RequireUserManager allows superusers and admins with a profile
func RequireUserManager() gin.HandlerFunc {
	return requireCapability(access.Actor.CanManageUsers, "You do not have permission to manage users")
}

// RequireSuperuser allows superusers only
func RequireSuperuser() gin.HandlerFunc {
	return requireCapability(access.Actor.CanExportUsers, "Superuser access required")
}

func requireCapability(allowed func(access.Actor) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.UnauthorizedResponse(c, "Authentication required")
			return
		}
		if !allowed(actor) {
			utils.ForbiddenResponse(c, message)
			return
		}
		c.Next()
	}
}
