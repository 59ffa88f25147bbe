package dto

import "github.com/berkeley-decal/decal-portal/internal/app/models"

// ErrorResponse is the wire shape of every error: a stable error string and
// optional client-safe details. Stack traces and internal identifiers never
// appear here.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse creates an ErrorResponse
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// WithDetails returns a copy carrying detail text
func (e ErrorResponse) WithDetails(details string) ErrorResponse {
	e.Details = details
	return e
}

// HealthResponse answers the liveness probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PublicCourseListResponse wraps the cached public course list.
type PublicCourseListResponse struct {
	Success bool           `json:"success"`
	Courses []PublicCourse `json:"courses"`
	Cached  bool           `json:"cached"`
}

// PublicCourseResponse wraps a single public course.
type PublicCourseResponse struct {
	Success bool         `json:"success"`
	Course  PublicCourse `json:"course"`
}

// ModeratorCourseListResponse wraps the cached moderator course list.
type ModeratorCourseListResponse struct {
	Success bool              `json:"success"`
	Courses []ModeratorCourse `json:"courses"`
	Cached  bool              `json:"cached"`
}

// SemesterListResponse lists known semester tokens, most recent first.
type SemesterListResponse struct {
	Success   bool     `json:"success"`
	Semesters []string `json:"semesters"`
}

// ProfileResponse wraps the caller's own profile.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Profile ProfileInfo `json:"profile"`
}

// ProfileInfo is the caller-visible slice of a profile.
type ProfileInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// AdminCheckResponse answers GET /admin/check.
type AdminCheckResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// SubmitCourseResponse is the result of a successful submission: the course
// as persisted plus the cross-validation outcome.
type SubmitCourseResponse struct {
	Success         bool                   `json:"success"`
	Course          *models.Course         `json:"course"`
	CrossValidation CrossValidationSummary `json:"crossValidation"`
}

// ModerationResponse is the result of an approve or reject transition.
type ModerationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Course  *models.Course `json:"course"`
}
