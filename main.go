package main

import (
	"log"
	"net/http"

	"catalog-be/internal/cache"
	"catalog-be/internal/config"
	"catalog-be/internal/controllers"
	"catalog-be/internal/database"
	"catalog-be/internal/jwt"
	"catalog-be/internal/middleware"
	"catalog-be/internal/repository"
	"catalog-be/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	// Initialize token service
	tokens := jwt.NewTokenService(
		cfg.JWTSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTExpireTime,
		cfg.JWTRefreshExpire,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenRepo, tokens)
	entryService := service.NewEntryService(entryRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, cfg.JWTRefreshExpire, cfg.Env == "production")
	entryController := controllers.NewEntryController(entryService)
	qrcodeController := controllers.NewQRCodeController(entryService, cfg.ClientURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Unhandled panic: %v", recovered)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong!"})
	}))

	// Allow the frontend origin; credentials needed for the refresh cookie
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/refresh", authController.Refresh)
			auth.POST("/logout", middleware.AuthMiddleware(tokens, userRepo), authController.Logout)
		}

		// Entry routes - all require JWT authentication
		entry := api.Group("/entry")
		entry.Use(middleware.AuthMiddleware(tokens, userRepo))
		{
			entry.POST("/", entryController.Create)
			entry.GET("/", entryController.List)
			entry.GET("/:id", entryController.Get)
			entry.PUT("/:id", entryController.Update)
			entry.DELETE("/:id", entryController.Delete)
			entry.GET("/:id/qrcode", qrcodeController.GenerateQRCode)
		}
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
