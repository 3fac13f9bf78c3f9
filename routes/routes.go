package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vet-portal-api/controllers"
	"vet-portal-api/middleware"
	"vet-portal-api/services"
)

// SetupRoutes wires the controllers onto the router. The database handle is
// passed in from main and threaded through constructors; there is no shared
// global connection.
func SetupRoutes(router *gin.Engine, db *gorm.DB) {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}

	submissions := services.NewSubmissionService(db)
	notifier := services.NewNotificationService(db)

	authCtl := controllers.NewAuthController(db)
	submissionCtl := controllers.NewSubmissionController(submissions, notifier, uploadPath)
	adminSubmissionCtl := controllers.NewAdminSubmissionController(submissions, notifier)
	dashboardCtl := controllers.NewDashboardController(submissions)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/submissions", submissionCtl.Create)
			public.GET("/submissions/:tracking_code", submissionCtl.Track)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Vet Portal API is running",
				})
			})
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/login", authCtl.Login)

			// Protected routes (require authentication)
			protected := admin.Group("")
			protected.Use(middleware.AuthMiddleware(db))
			{
				protected.GET("/profile", authCtl.GetProfile)
				protected.PUT("/change-password", authCtl.ChangePassword)

				protected.GET("/submissions", adminSubmissionCtl.List)
				protected.GET("/submissions/:id", adminSubmissionCtl.Get)
				protected.PATCH("/submissions/:id/status", adminSubmissionCtl.UpdateStatus)

				protected.GET("/dashboard/stats", dashboardCtl.GetStats)
			}
		}
	}
}
