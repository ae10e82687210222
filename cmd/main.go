package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/GradUWate/GradUWate-backend/internal/clients/redis"
	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	datagraph "github.com/GradUWate/GradUWate-backend/internal/data/graph"
	"github.com/GradUWate/GradUWate-backend/internal/db"
	"github.com/GradUWate/GradUWate-backend/internal/graphdb"
	"github.com/GradUWate/GradUWate-backend/internal/handlers"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/repos"
	"github.com/GradUWate/GradUWate-backend/internal/server"
	"github.com/GradUWate/GradUWate-backend/internal/services"
	"github.com/GradUWate/GradUWate-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Relational store
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Graph backend: neo4j when configured, in-memory otherwise.
	log.Info("Setting up graph backend from main...")
	var courseGraph coursegraph.Graph
	graphClient, err := graphdb.NewFromEnv(log)
	if err != nil {
		log.Error("Graph client init failed", "error", err)
		os.Exit(1)
	}
	if graphClient != nil {
		connectWait := utils.GetEnvAsInt("NEO4J_CONNECT_WAIT_SECONDS", 30, log)
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(connectWait+5)*time.Second)
		if err := graphClient.Connect(ctx, time.Duration(connectWait)*time.Second); err != nil {
			// Queries fail with service-unavailable until a restart
			// brings the backend up; ingestion into Postgres still works.
			log.Warn("Graph backend unavailable at startup", "error", err)
		}
		cancel()
		defer graphClient.Close(context.Background())
		courseGraph = datagraph.NewNeo4jCourseGraph(graphClient, log)
	} else {
		log.Warn("NEO4J_URI not set, serving the graph from memory")
		courseGraph = coursegraph.NewMemoryGraph()
	}

	// Optional cache
	var cache redis.GraphCache
	if utils.GetEnv("REDIS_ADDR", "", log) != "" {
		cache, err = redis.NewGraphCache(log)
		if err != nil {
			log.Warn("Could not init graph cache, continuing without it", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// Repos
	log.Info("Setting up repos from main...")
	courseRepo := repos.NewCourseRepo(thePG, log)
	constraintRepo := repos.NewConstraintRepo(thePG, log)
	ingestRunRepo := repos.NewIngestRunRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	planService, err := services.NewPlanService(log, utils.GetEnv("PLANS_FILE", "", log))
	if err != nil {
		log.Error("Could not init PlanService", "error", err)
		os.Exit(1)
	}
	courseService := services.NewCourseService(thePG, log, courseRepo, constraintRepo)
	graphQueryService := services.NewGraphQueryService(courseGraph, log, planService, cache)
	ingestService := services.NewIngestService(thePG, log, courseRepo, constraintRepo, ingestRunRepo, courseGraph, cache)

	// Handlers
	log.Info("Setting up handlers from main...")
	courseHandler := handlers.NewCourseHandler(log, courseService)
	graphHandler := handlers.NewGraphHandler(log, graphQueryService)
	ingestHandler := handlers.NewIngestHandler(log, ingestService)
	planHandler := handlers.NewPlanHandler(log, planService)

	// Router
	log.Info("Setting up router from main...")
	origins := utils.GetEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}, log)
	router := server.NewRouter(server.RouterConfig{
		CourseHandler: courseHandler,
		GraphHandler:  graphHandler,
		IngestHandler: ingestHandler,
		PlanHandler:   planHandler,
		AllowOrigins:  origins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
