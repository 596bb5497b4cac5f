package app

import (
	"skilltrack_backend/docs"
	"skilltrack_backend/internal/config"
	"skilltrack_backend/internal/middleware"
	"skilltrack_backend/internal/model"
	"skilltrack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			admin.GET("/dashboard", c.admin.GetDashboard)
			admin.GET("/trainers", c.admin.ListTrainers)
			admin.POST("/trainers", c.admin.AddTrainer)
			admin.PUT("/trainers/:id", c.admin.UpdateTrainer)
			admin.POST("/courses", c.admin.RequestCourse)
			admin.GET("/courses/schedulable", c.admin.SchedulableCourses)
			admin.POST("/courses/:id/schedule", c.admin.ScheduleCourse)
			admin.POST("/courses/:id/complete", c.admin.CompleteCourse)
			admin.GET("/courses/rejected", c.admin.RejectedCourses)
			admin.GET("/courses/approved", c.admin.ApprovedCourses)
			admin.GET("/feedback", c.admin.FeedbackSummary)
		}

		trainer := authGroup.Group("/trainer")
		trainer.Use(middleware.RoleMiddleware(model.RoleTrainer))
		{
			trainer.GET("/dashboard", c.trainer.GetDashboard)
			trainer.GET("/courses", c.trainer.MyCourses)
			trainer.GET("/requests", c.trainer.CourseRequests)
			trainer.POST("/requests/:id/accept", c.trainer.AcceptCourse)
			trainer.POST("/requests/:id/decline", c.trainer.DeclineCourse)
			trainer.POST("/courses/:id/documentation", c.trainer.UploadDocumentation)
			trainer.GET("/courses/:id/documentation", c.trainer.DocumentationHistory)
			trainer.POST("/courses/:id/resubmit", c.trainer.SubmitForReview)
			trainer.GET("/approvals", c.trainer.ApprovalsFeedback)
			trainer.GET("/sessions/completed", c.trainer.CompletedSessions)
			trainer.POST("/sessions/:id/feedback", c.trainer.RateSession)
			trainer.POST("/sessions/:id/report", c.trainer.SubmitSessionReport)
		}

		observer := authGroup.Group("/observer")
		observer.Use(middleware.RoleMiddleware(model.RoleObserver))
		{
			observer.GET("/dashboard", c.observer.GetDashboard)
			observer.GET("/reviews/pending", c.observer.PendingReviews)
			observer.GET("/reviews/completed", c.observer.CompletedReviews)
			observer.POST("/reviews/:id", c.observer.ReviewDocumentation)
			observer.GET("/reviews/:id/feedback", c.observer.DocumentationFeedback)
		}
	}
}
