package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cerebra-app/cerebra-backend/internal/handlers"
	"github.com/cerebra-app/cerebra-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	StudyHandler      *handlers.StudyHandler
	CalendarHandler   *handlers.CalendarHandler
	GenerationHandler *handlers.GenerationHandler
	ServiceName       string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Requested-With"},
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/token", cfg.AuthHandler.Token)
	router.POST("/analyze-syllabus", cfg.GenerationHandler.AnalyzeSyllabus)
	router.POST("/generate-quiz", cfg.GenerationHandler.GenerateQuiz)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Generation
	protected.POST("/generate-plan", cfg.GenerationHandler.GeneratePlan)
	// History
	protected.POST("/log-session", cfg.StudyHandler.LogSession)
	protected.GET("/user-stats", cfg.StudyHandler.GetStats)
	protected.DELETE("/reset-history", cfg.StudyHandler.ResetHistory)
	// Calendar
	protected.POST("/calendar/add", cfg.CalendarHandler.AddTask)
	protected.GET("/calendar/get", cfg.CalendarHandler.GetTasks)
	protected.PUT("/calendar/update/:id", cfg.CalendarHandler.UpdateTask)
	protected.PATCH("/calendar/toggle/:id", cfg.CalendarHandler.ToggleTask)
	protected.DELETE("/calendar/delete/:id", cfg.CalendarHandler.DeleteTask)
	protected.DELETE("/calendar/reset", cfg.CalendarHandler.ResetTasks)

	return router
}
