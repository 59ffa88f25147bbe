package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
	"github.com/berkeley-decal/decal-portal/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Client-fixable
// problems keep their message; anything unexpected collapses to a generic
// 500 so internals never leak.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := err.Error()
	details := ""
	if errors.As(err, &custom) {
		if custom.Message != "" {
			message = custom.Message
		}
		details = custom.Details
	}

	response := dto.NewErrorResponse(message)
	if details != "" {
		response = response.WithDetails(details)
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidEmail),
		errors.Is(err, apperrors.ErrMissingAttachment),
		errors.Is(err, apperrors.ErrInvalidAttachment),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrStateConflict):
		c.JSON(http.StatusBadRequest, response)

	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, response)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, response)

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, response)

	default:
		// Covers ErrUpstream and anything unrecognized. The cause goes to
		// the log, not the client.
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}
