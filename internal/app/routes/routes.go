package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berkeley-decal/decal-portal/internal/app/controllers"
	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/middleware"
)

// RateLimits carries the per-bucket request caps.
type RateLimits struct {
	PublicLimit  int
	PrivateLimit int
	Window       time.Duration
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	submissionController *controllers.SubmissionController,
	adminController *controllers.AdminController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	limits RateLimits,
) {
	publicLimit := rateLimiter.Limit("public", limits.PublicLimit, limits.Window)
	privateLimit := rateLimiter.Limit("private", limits.PrivateLimit, limits.Window)

	// --- Liveness probe ---
	router.GET("/health", publicLimit, courseController.Health)

	api := router.Group("/api")

	// --- Public read routes ---
	public := api.Group("")
	public.Use(publicLimit)
	{
		public.GET("/approvedCourses", courseController.GetApprovedCourses)
		public.GET("/courses/:id", courseController.GetCourseByID)
		public.GET("/semesters", courseController.GetSemesters)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(privateLimit, authMiddleware.RequireAuth())
	{
		authenticated.GET("/profile", profileController.GetProfile)
		authenticated.POST("/submitCourse", submissionController.SubmitCourse)
	}

	// Admin check is authenticated but not admin-gated: it answers the
	// question instead of enforcing it.
	router.GET("/admin/check", privateLimit, authMiddleware.RequireAuth(), profileController.AdminCheck)

	// --- Moderator routes ---
	admin := api.Group("")
	admin.Use(privateLimit, authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		admin.GET("/unapprovedCourses", adminController.GetUnapprovedCourses)
		admin.POST("/approveCourse", adminController.ApproveCourse)
		admin.POST("/rejectCourse", adminController.RejectCourse)
		admin.GET("/downloadCPF/:courseId", adminController.DownloadCPF)
	}

	// Unmatched routes get the same JSON error shape as everything else.
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("route not found"))
	})
}
