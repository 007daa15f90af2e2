package http

import (
	"github.com/gin-gonic/gin"

	"taskflow/internal/adapter/http/handlers"
	"taskflow/internal/adapter/http/middleware"
	"taskflow/internal/core/ports"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Tasks     *handlers.TaskHandler
	Summaries *handlers.SummaryHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, verifier ports.TokenVerifier) {
	r.GET("/health", h.Health.CheckHealth)

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		auth := api.Group("/auth")
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(verifier))

		protected.GET("/tasks", h.Tasks.ListTasks)
		protected.POST("/tasks", h.Tasks.CreateTask)
		protected.PUT("/tasks/:id", h.Tasks.UpdateTask)
		protected.DELETE("/tasks/:id", h.Tasks.DeleteTask)

		protected.GET("/summaries", h.Summaries.ListSummaries)
		protected.POST("/summaries", h.Summaries.UpsertSummary)
		protected.POST("/summaries/generate", h.Summaries.GenerateSummary)
		protected.POST("/summaries/weekly", h.Summaries.GenerateWeeklySummary)
		protected.GET("/summaries/range/:startDate/:endDate", h.Summaries.ListSummaryRange)
		protected.GET("/summaries/:date", h.Summaries.GetSummary)
		protected.DELETE("/summaries/:date", h.Summaries.DeleteSummary)
	}
}
