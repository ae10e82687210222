package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GradUWate/GradUWate-backend/internal/handlers"
)

type RouterConfig struct {
	CourseHandler *handlers.CourseHandler
	GraphHandler  *handlers.GraphHandler
	IngestHandler *handlers.IngestHandler
	PlanHandler   *handlers.PlanHandler
	AllowOrigins  []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		api.GET("/courses/:code", cfg.CourseHandler.GetCourse)
		api.GET("/courses/:code/backpath", cfg.GraphHandler.Backpath)
		api.GET("/courses/:code/frontpath", cfg.GraphHandler.Frontpath)
		api.POST("/courses/by-plans", cfg.GraphHandler.ByPlans)
		api.GET("/plans", cfg.PlanHandler.ListPlans)
		api.POST("/ingest/records", cfg.IngestHandler.IngestRecords)
	}

	return router
}
