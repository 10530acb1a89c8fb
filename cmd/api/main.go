package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/config"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/handlers"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/middleware"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/repository"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Session Manager (the store connects lazily on first use)
	sessions := database.NewSessionManager(cfg)

	// 3. Repositories
	candidateRepo := repository.NewCandidateRepository(sessions)
	positionRepo := repository.NewPositionRepository(sessions)

	// 4. Core Services
	transitionService := services.NewTransitionService(candidateRepo, positionRepo)
	dashboardService := services.NewDashboardService(candidateRepo, positionRepo)

	// 5. Handlers
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, transitionService)
	positionHandler := handlers.NewPositionHandler(positionRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	diagnosticsHandler := handlers.NewDiagnosticsHandler(sessions)

	// 6. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.RequestID())

	// 7. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Candidate Routes
		api.GET("/candidates", candidateHandler.List)
		api.POST("/candidates", candidateHandler.Create)
		api.GET("/candidates/:id", candidateHandler.Get)
		api.PATCH("/candidates/:id", candidateHandler.UpdateStatus)
		api.DELETE("/candidates/:id", candidateHandler.Delete)

		// Position Routes
		api.GET("/positions", positionHandler.List)
		api.POST("/positions", positionHandler.Create)
		api.PATCH("/positions/:id", positionHandler.UpdateStatus)
		api.DELETE("/positions/:id", positionHandler.Delete)

		// Dashboard & Diagnostics
		api.GET("/dashboard", dashboardHandler.Overview)
		api.GET("/diagnostics/connection", diagnosticsHandler.Connection)
		api.GET("/diagnostics/write", diagnosticsHandler.Write)
	}

	log.Printf("🚀 Server starting on %s...", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
