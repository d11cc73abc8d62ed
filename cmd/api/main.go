package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gigcred/backend/internal/config"
	"github.com/gigcred/backend/internal/handlers"
	"github.com/gigcred/backend/internal/middleware"
	"github.com/gigcred/backend/internal/models"
	"github.com/gigcred/backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	smsService := services.NewSMSService(cfg)
	otpService := services.NewOTPService(db, smsService)
	authService := services.NewAuthService(db, redisClient, cfg, otpService)
	userService := services.NewUserService(db)
	scoringService := services.NewScoringService(db)
	storageService := services.NewStorageService(cfg)
	resumeService := services.NewResumeService(db, scoringService, storageService)
	financeService := services.NewFinanceService(db, cfg)
	reportService := services.NewReportService(cfg)

	// Periodic cleanup for stale verification codes
	go func() {
		for {
			deleted, err := otpService.CleanupStale()
			if err != nil {
				log.Printf("Verification code cleanup error: %v", err)
			} else if deleted > 0 {
				log.Printf("Verification code cleanup: removed %d stale records", deleted)
			}
			time.Sleep(1 * time.Hour)
		}
	}()

	// Periodic cleanup for expired refresh tokens
	go func() {
		for {
			if err := authService.CleanupExpiredTokens(); err != nil {
				log.Printf("Refresh token cleanup error: %v", err)
			}
			time.Sleep(1 * time.Hour)
		}
	}()

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, otpService, cfg)
	userHandler := handlers.NewUserHandler(userService, resumeService, financeService, reportService)
	publicHandler := handlers.NewPublicHandler(userService)

	// Health check outside API group (no /api/v1 prefix)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		// Health check also available under /api/v1/health for compatibility
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Public routes
		public := api.Group("/public")
		{
			public.GET("/profiles/:id", publicHandler.GetPublicProfile)
		}

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/otp/send", authHandler.SendOTP)
			auth.POST("/otp/verify", authHandler.VerifyOTP)
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.Auth(authService), authHandler.Logout)
			auth.POST("/password/reset", authHandler.ResetPassword)
		}

		// User routes
		user := api.Group("/user")
		user.Use(middleware.Auth(authService))
		{
			user.GET("/profile", userHandler.GetProfile)
			user.PUT("/profile", userHandler.UpdateProfile)
			user.POST("/resume", userHandler.UploadResume)
			user.POST("/bank/connect", userHandler.ConnectBank)
			user.GET("/credibility", userHandler.GetCredibility)
			user.GET("/credibility-report.pdf", userHandler.CredibilityReport)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
