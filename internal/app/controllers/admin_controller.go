package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/services"
	"github.com/berkeley-decal/decal-portal/internal/middleware"
	"github.com/berkeley-decal/decal-portal/internal/pkg/validation"
)

// AdminController handles the moderator endpoints
type AdminController struct {
	moderationService *services.ModerationService
}

// NewAdminController creates a new AdminController
func NewAdminController(moderationService *services.ModerationService) *AdminController {
	return &AdminController{
		moderationService: moderationService,
	}
}

// moderationRequest is the JSON body of approveCourse and rejectCourse.
type moderationRequest struct {
	ID                string   `json:"id"`
	Feedback          string   `json:"feedback"`
	FacilitatorEmails []string `json:"facilitatorEmails"`
}

// GetUnapprovedCourses lists every course with moderator enrichment.
func (c *AdminController) GetUnapprovedCourses(ctx *gin.Context) {
	courses, cached, err := c.moderationService.ListForReview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ModeratorCourseListResponse{
		Success: true,
		Courses: courses,
		Cached:  cached,
	})
}

// ApproveCourse moves a Pending course to Active.
func (c *AdminController) ApproveCourse(ctx *gin.Context) {
	req, id, ok := c.bindModerationRequest(ctx)
	if !ok {
		return
	}

	course, err := c.moderationService.Approve(ctx.Request.Context(), id, req.FacilitatorEmails)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ModerationResponse{
		Success: true,
		Message: "Course approved successfully",
		Course:  course,
	})
}

// RejectCourse moves a Pending course to Rejected with mandatory feedback.
func (c *AdminController) RejectCourse(ctx *gin.Context) {
	req, id, ok := c.bindModerationRequest(ctx)
	if !ok {
		return
	}

	course, err := c.moderationService.Reject(ctx.Request.Context(), id, req.Feedback, req.FacilitatorEmails)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ModerationResponse{
		Success: true,
		Message: "Course rejected successfully",
		Course:  course,
	})
}

// DownloadCPF streams the proposal-form PDF as an attachment.
func (c *AdminController) DownloadCPF(ctx *gin.Context) {
	idStr := ctx.Param("courseId")
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

	filename, content, err := c.moderationService.DownloadCPF(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", content)
}

// bindModerationRequest parses the shared moderation body and validates the
// course id shape.
func (c *AdminController) bindModerationRequest(ctx *gin.Context) (*moderationRequest, uuid.UUID, bool) {
	var req moderationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid request body").WithDetails(err.Error()))
		return nil, uuid.Nil, false
	}

	if !validation.IsUUID(req.ID) {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid course ID").WithDetails("Course ID must be a valid UUID"))
		return nil, uuid.Nil, false
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid course ID").WithDetails("Course ID must be a valid UUID"))
		return nil, uuid.Nil, false
	}

	return &req, id, true
}
