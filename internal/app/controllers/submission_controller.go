package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/services"
	"github.com/berkeley-decal/decal-portal/internal/middleware"
)

// SubmissionController handles course proposal intake
type SubmissionController struct {
	submissionService *services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService *services.SubmissionService) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
	}
}

// SubmitCourse accepts a multipart proposal: a "data" JSON field plus the
// "cpf_file" and "syllabus_file" PDF attachments.
func (c *SubmissionController) SubmitCourse(ctx *gin.Context) {
	dataField := ctx.PostForm("data")
	if dataField == "" {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid submission").WithDetails("data field is required"))
		return
	}

	var payload dto.CourseSubmission
	if err := json.Unmarshal([]byte(dataField), &payload); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid submission").WithDetails("data field must be valid JSON"))
		return
	}

	cpf, cpfFile, err := openAttachment(ctx, "cpf_file")
	if err == nil {
		defer cpfFile.Close()
	}

	syllabus, syllabusFile, err := openAttachment(ctx, "syllabus_file")
	if err == nil {
		defer syllabusFile.Close()
	}

	result, err := c.submissionService.Submit(ctx.Request.Context(), &services.SubmissionRequest{
		Data:     payload,
		CPF:      cpf,
		Syllabus: syllabus,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SubmitCourseResponse{
		Success:         true,
		Course:          result.Course,
		CrossValidation: result.Validation.Summary(),
	})
}

// openAttachment reads one named multipart file. A missing file is not an
// error here; the service decides which attachments are mandatory.
func openAttachment(ctx *gin.Context, field string) (*services.Attachment, multipart.File, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	return &services.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, file, nil
}
