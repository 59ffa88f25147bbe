package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
	"github.com/berkeley-decal/decal-portal/internal/middleware"
	"github.com/berkeley-decal/decal-portal/internal/pkg/logger"
)

// ProfileController handles the caller's own profile endpoints
type ProfileController struct {
	profiles *repositories.ProfileRepository
}

// NewProfileController creates a new ProfileController
func NewProfileController(profiles *repositories.ProfileRepository) *ProfileController {
	return &ProfileController{
		profiles: profiles,
	}
}

// GetProfile returns the caller's own profile. A caller with no profile row
// still gets a valid response; they are simply not an admin.
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	email := ctx.GetString(middleware.ContextEmail)

	info := dto.ProfileInfo{
		ID:    userID,
		Email: email,
	}

	profile, err := c.profiles.GetByID(ctx.Request.Context(), userID)
	switch {
	case err == nil:
		info.IsAdmin = profile.HasPermission(models.PermissionReadAll)
		if profile.Email != "" {
			info.Email = profile.Email
		}
	case errors.Is(err, repositories.ErrProfileNotFound):
		// Not an error; the caller just has no stored profile.
	default:
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		Profile: info,
	})
}

// AdminCheck reports whether the caller holds admin permissions. It never
// errors; any lookup failure reads as not-admin.
func (c *ProfileController) AdminCheck(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)

	isAdmin := false
	profile, err := c.profiles.GetByID(ctx.Request.Context(), userID)
	if err == nil {
		isAdmin = profile.HasPermission(models.PermissionReadAll)
	} else if !errors.Is(err, repositories.ErrProfileNotFound) {
		logger.Warn().Err(err).Str("userID", userID).Msg("Profile lookup failed during admin check")
	}

	ctx.JSON(http.StatusOK, dto.AdminCheckResponse{IsAdmin: isAdmin})
}
