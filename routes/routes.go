package routes

import (
	"question-bank-api/controllers"
	"question-bank-api/middleware"
	"question-bank-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Question Bank API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Dashboard + ledger (all authenticated users)
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
			protected.GET("/ledger", controllers.GetMyLedger)

			// Questions
			questions := protected.Group("/questions")
			{
				questions.GET("/:id", controllers.GetQuestion)

				// Maker-only authoring surface
				questions.POST("", middleware.RequireRole(models.RoleMaker), controllers.CreateOrUpdateQuestion)
				questions.GET("/drafts", middleware.RequireRole(models.RoleMaker), controllers.GetDraftQuestions)
				questions.DELETE("", middleware.RequireRole(models.RoleMaker), controllers.DeleteQuestions)
				questions.PUT("/submit", middleware.RequireRole(models.RoleMaker), controllers.SubmitQuestions)
				questions.PUT("/:id/resubmit", middleware.RequireRole(models.RoleMaker), controllers.ResubmitQuestion)
				questions.GET("/submitted", middleware.RequireRole(models.RoleMaker), controllers.GetSubmittedQuestions)
			}

			// Review surface (checkers)
			checker := protected.Group("/checker")
			checker.Use(middleware.RequireRole(models.RoleChecker))
			{
				checker.GET("/questions/pending", controllers.GetPendingQuestions)
				checker.GET("/questions/reviewed", controllers.GetReviewedQuestions)
				checker.PUT("/questions/:id/approve", controllers.ApproveQuestion)
				checker.PUT("/questions/:id/reject", controllers.RejectQuestion)
				checker.PUT("/questions/approve-bulk", controllers.BulkApproveQuestions)
			}

			// Papers
			papers := protected.Group("/papers")
			{
				papers.GET("/available", middleware.RequireRole(models.RoleMaker), controllers.GetAvailablePapers)
				papers.GET("/claimed", middleware.RequireRole(models.RoleMaker), controllers.GetMyClaimedPapers)
				papers.PUT("/:id/claim", middleware.RequireRole(models.RoleMaker), controllers.ClaimPaper)
				papers.GET("/:id/download", controllers.DownloadPaper)

				// Admin management
				papers.GET("", middleware.RequireRole(models.RoleAdmin), controllers.GetAllPapers)
				papers.POST("/upload", middleware.RequireRole(models.RoleAdmin), controllers.UploadPapers)
				papers.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeletePaper)
			}

			// Admin user management
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/users", controllers.CreateUser)
				admin.GET("/users", controllers.GetAllUsers)
				admin.DELETE("/users/:id", controllers.DeleteUser)
			}
		}
	}
}
