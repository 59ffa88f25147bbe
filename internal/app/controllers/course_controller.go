package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/services"
	"github.com/berkeley-decal/decal-portal/internal/middleware"
	"github.com/berkeley-decal/decal-portal/internal/pkg/validation"
)

// CourseController handles the public course read endpoints
type CourseController struct {
	catalogService *services.CatalogService
}

// NewCourseController creates a new CourseController
func NewCourseController(catalogService *services.CatalogService) *CourseController {
	return &CourseController{
		catalogService: catalogService,
	}
}

// Health answers the liveness probe.
func (c *CourseController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// GetApprovedCourses lists every Active course in the sanitized public shape.
func (c *CourseController) GetApprovedCourses(ctx *gin.Context) {
	courses, cached, err := c.catalogService.ApprovedCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PublicCourseListResponse{
		Success: true,
		Courses: courses,
		Cached:  cached,
	})
}

// GetCourseByID returns one Active course. The id must look like a UUID
// before any lookup happens.
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	idStr := ctx.Param("id")
	if !validation.IsUUID(idStr) {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid course ID").WithDetails("Course ID must be a valid UUID"))
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid course ID").WithDetails("Course ID must be a valid UUID"))
		return
	}

	course, err := c.catalogService.ActiveCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PublicCourseResponse{
		Success: true,
		Course:  *course,
	})
}

// GetSemesters lists the known semester tokens, most recent first.
func (c *CourseController) GetSemesters(ctx *gin.Context) {
	semesters, err := c.catalogService.Semesters(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SemesterListResponse{
		Success:   true,
		Semesters: semesters,
	})
}
