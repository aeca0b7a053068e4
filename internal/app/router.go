package app

import (
	"time"

	"mock_interview_backend/docs"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/middleware"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/monitoring"
	"mock_interview_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	perUser := func(ctx *gin.Context) string { return util.UserIDFromContext(ctx) }

	api := router.Group("/api/v1")
	api.Use(middleware.Identity())
	api.Use(security.RateLimiter(cfg.RateLimit.UserPerHour, time.Hour, perUser))
	{
		// 模型调用密集的路由单独按用户限流
		aiLimited := api.Group("/")
		aiLimited.Use(security.RateLimiter(cfg.RateLimit.AIPerMinute, time.Minute, perUser))
		{
			aiLimited.POST("/interviews", c.interview.Start)
			aiLimited.POST("/interviews/:id/answers", c.interview.SubmitAnswer)
			aiLimited.POST("/chat/conversations/:id/messages", c.chat.SendMessage)
			aiLimited.POST("/chat/conversations/:id/messages/stream", c.chat.SendMessageStream)
			aiLimited.POST("/analysis", c.analysis.Analyze)
		}

		interviews := api.Group("/interviews")
		{
			interviews.GET("", c.interview.List)
			interviews.GET("/:id", c.interview.GetStatus)
			interviews.POST("/:id/pause", c.interview.Pause)
			interviews.POST("/:id/resume", c.interview.Resume)
			interviews.DELETE("/:id", c.interview.Abort)
			interviews.GET("/:id/report", c.interview.GetReport)
			interviews.GET("/:id/recordings", c.recording.ListBySession)
			interviews.POST("/:id/turns/:seq/recording", c.recording.Upload)
		}

		chat := api.Group("/chat/conversations")
		{
			chat.POST("", c.chat.CreateConversation)
			chat.GET("", c.chat.ListConversations)
			chat.GET("/:id", c.chat.GetConversation)
			chat.DELETE("/:id", c.chat.DeleteConversation)
		}

		analysis := api.Group("/analysis")
		{
			analysis.GET("", c.analysis.List)
			analysis.GET("/:id", c.analysis.GetAnalysis)
		}

		feedback := api.Group("/feedback")
		{
			feedback.POST("", c.feedback.Submit)
			feedback.GET("/stats", c.feedback.Stats)
			feedback.GET("/sessions/:id", c.feedback.ListBySession)
		}

		recordings := api.Group("/recordings")
		{
			recordings.GET("/:id", c.recording.Get)
			recordings.PUT("/:id/signals", c.recording.AttachSignals)
			recordings.DELETE("/:id", c.recording.Delete)
		}
	}
}
