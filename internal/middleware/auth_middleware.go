package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
	"github.com/berkeley-decal/decal-portal/internal/pkg/identity"
	"github.com/berkeley-decal/decal-portal/internal/pkg/logger"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	ContextUserID  = "userID"
	ContextEmail   = "email"
	ContextProfile = "profile"
)

// ProfileStore loads caller profiles for the admin gate.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// AuthMiddleware authenticates bearer tokens and gates admin routes
type AuthMiddleware struct {
	verifier identity.Verifier
	profiles ProfileStore
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier identity.Verifier, profiles ProfileStore) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		profiles: profiles,
	}
}

// RequireAuth validates the Authorization bearer token and attaches the
// caller identity to the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required").WithDetails("Authorization header missing"))
			return
		}

		token, err := identity.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required").WithDetails("Invalid token format"))
			return
		}

		caller, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				details = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication failed").WithDetails(details))
			return
		}

		c.Set(ContextUserID, caller.ID)
		c.Set(ContextEmail, caller.Email)
		c.Next()
	}
}

// RequireAdmin loads the caller's profile and rejects anyone without the
// read-all permission. Must run after RequireAuth. A missing profile or a
// lookup failure both deny access rather than erroring, so an attacker
// cannot distinguish "no profile" from "not an admin".
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}

		profile, err := m.profiles.GetByID(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, repositories.ErrProfileNotFound) {
				logger.Error().Err(err).Str("userID", userID).Msg("Profile lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Permission denied").WithDetails("Admin access required"))
			return
		}

		if !profile.HasPermission(models.PermissionReadAll) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Permission denied").WithDetails("Admin access required"))
			return
		}

		c.Set(ContextProfile, profile)
		c.Next()
	}
}
