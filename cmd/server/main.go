package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recognizer/internal/config"
	"recognizer/internal/handler"
	"recognizer/internal/luis"
	"recognizer/internal/repository"
	"recognizer/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("NLU Recognition Service")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Validate the model configuration up front so a bad version fails at
	// startup, not on the first request
	apiVersion, err := luis.ParseAPIVersion(cfg.LUIS.APIVersion)
	if err != nil {
		log.Fatalf("Invalid LUIS configuration: %v", err)
	}

	luisModel := luis.Model{
		AppID:           cfg.LUIS.AppID,
		SubscriptionKey: cfg.LUIS.SubscriptionKey,
		Endpoint:        cfg.LUIS.Endpoint,
		Version:         apiVersion,
		Threshold:       cfg.LUIS.ScoreThreshold,
	}

	luisClient := luis.New(
		luisModel,
		luis.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.LUIS.TimeoutSeconds) * time.Second}),
		luis.WithModifyRequest(service.ConfigDefaults(&cfg.LUIS)),
	)
	log.Printf("✅ LUIS client initialized")
	log.Printf("   - App ID: %s", cfg.LUIS.AppID)
	log.Printf("   - Endpoint: %s", cfg.LUIS.Endpoint)
	log.Printf("   - API version: %s", apiVersion)
	log.Printf("   - Score threshold: %.2f", cfg.LUIS.ScoreThreshold)
	log.Printf("   - Timeout: %ds", cfg.LUIS.TimeoutSeconds)

	// Initialize the utterance log store (optional)
	var repo *repository.PostgresRepository
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()
		log.Println("✅ Connected to PostgreSQL utterance log")
	} else {
		log.Println("⚠️  Utterance log is disabled - recognitions will not be recorded")
	}

	// Initialize services
	recognizeService := service.NewRecognizeService(luisClient, repo)
	log.Println("✅ Services initialized")

	// Initialize handlers
	recognizeHandler := handler.NewRecognizeHandler(recognizeService)
	utteranceHandler := handler.NewUtteranceHandler(recognizeService, 20, 100)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "nlu-recognition-service",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/recognize", recognizeHandler.Recognize)
		apiV1.GET("/utterances", utteranceHandler.List)
		apiV1.GET("/utterances/stats", utteranceHandler.Stats)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
