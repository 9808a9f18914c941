package app

import (
	"ranked_arena_backend/docs"
	"ranked_arena_backend/internal/config"
	"ranked_arena_backend/internal/middleware"
	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		arena := authGroup.Group("/arena")
		{
			arena.POST("/runs", c.arena.StartRun)
			arena.GET("/runs/:id", c.arena.GetRun)
			arena.GET("/runs/:id/question", c.arena.NextQuestion)
			arena.POST("/runs/:id/answers", c.arena.SubmitAnswer)
			arena.POST("/runs/:id/finalize", c.arena.FinalizeRun)

			arena.GET("/rating", c.arena.GetRating)
			arena.GET("/leaderboard", c.arena.Leaderboard)

			arena.GET("/ladder", c.ladder.GetLadder)
			arena.GET("/ladder/title", c.ladder.TitleFor)
			arena.GET("/ladder/next", c.ladder.NextTier)
		}

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/questions", c.question.CreateQuestion)
			admin.GET("/questions", c.question.ListQuestions)
			admin.GET("/questions/:id", c.question.GetQuestion)
			admin.PUT("/questions/:id", c.question.UpdateQuestion)
			admin.DELETE("/questions/:id", c.question.DeleteQuestion)
		}
	}
}
