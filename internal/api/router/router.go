package router

import (
	"net/http"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, verifier TokenVerifier) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "careerconnect-api",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Handlers
	profileHandler := handler.NewProfileHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	cvHandler := handler.NewCVHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	savedJobHandler := handler.NewSavedJobHandler(deps)
	notificationHandler := handler.NewNotificationHandler(deps)

	// Middleware chains
	authed := RequireAuth(deps.Logger, verifier)
	anyRole := RequireRole(deps.Logger, deps.Storage)
	jobSeeker := RequireRole(deps.Logger, deps.Storage, domain.RoleJobSeeker)
	recruiter := RequireRole(deps.Logger, deps.Storage, domain.RoleRecruiter)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Profile routes run behind token verification only so that new
		// users can register before a profile row exists.
		profiles := v1.Group("/profiles", authed)
		{
			profiles.GET("/me", profileHandler.Get)
			profiles.POST("/me", profileHandler.Create)
			profiles.PUT("/me", profileHandler.Update)
		}

		jobs := v1.Group("/jobs")
		{
			// Browsing postings is public
			jobs.GET("", jobHandler.Search)
			jobs.GET("/:id", jobHandler.Get)

			jobs.POST("", authed, recruiter, jobHandler.Create)
			jobs.PUT("/:id", authed, recruiter, jobHandler.Update)
			jobs.DELETE("/:id", authed, recruiter, jobHandler.Delete)
		}

		cvs := v1.Group("/cvs", authed)
		{
			cvs.GET("", jobSeeker, cvHandler.List)
			cvs.POST("", jobSeeker, cvHandler.Create)
			cvs.PUT("/:id", jobSeeker, cvHandler.Update)
			cvs.DELETE("/:id", jobSeeker, cvHandler.Delete)

			// Recruiters can read a CV attached to one of their applications
			cvs.GET("/:id", anyRole, cvHandler.Get)
		}

		applications := v1.Group("/applications", authed)
		{
			applications.POST("", jobSeeker, applicationHandler.Submit)
			applications.GET("/me", jobSeeker, applicationHandler.ListMine)
			applications.GET("/received", recruiter, applicationHandler.ListForRecruiter)
			applications.GET("/:id", anyRole, applicationHandler.Get)
			applications.PATCH("/:id/status", recruiter, applicationHandler.UpdateStatus)
			applications.DELETE("/:id", jobSeeker, applicationHandler.Withdraw)
		}

		savedJobs := v1.Group("/saved-jobs", authed, jobSeeker)
		{
			savedJobs.GET("", savedJobHandler.List)
			savedJobs.POST("", savedJobHandler.Save)
			savedJobs.GET("/:jobId", savedJobHandler.Check)
			savedJobs.DELETE("/:jobId", savedJobHandler.Unsave)
		}

		notifications := v1.Group("/notifications", authed, anyRole)
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
			notifications.PATCH("/:id", notificationHandler.MarkRead)

			notifications.POST("/fcm-tokens", notificationHandler.RegisterDeviceToken)
			notifications.GET("/fcm-tokens", notificationHandler.ListDeviceTokens)
			notifications.DELETE("/fcm-tokens", notificationHandler.RemoveDeviceToken)
		}
	}

	return r
}
