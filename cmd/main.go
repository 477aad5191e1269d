package main

import (
	"context"
	"log"
	"os"
	"strconv"

	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"feastly/internal/analytics"
	"feastly/internal/caching"
	"feastly/internal/handlers"
	"feastly/internal/jobs/background"
	"feastly/internal/middleware"
	"feastly/internal/repositories"
	"feastly/internal/services"
	"feastly/pkg/database"
)

const (
	defaultPort    = "8080"
	defaultBucket  = "feastly-images"
	accessTokenTTL = 3600 // seconds
)

func main() {
	ctx := context.Background()

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret; tokens will not survive a restart")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	imageBucket := os.Getenv("MINIO_BUCKET")
	if imageBucket == "" {
		imageBucket = defaultBucket
	}

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, imageBucket); err != nil {
		log.Printf("WARN: could not ensure bucket %q exists: %v", imageBucket, err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	restaurantRepo := repositories.NewRestaurantRepo(pool)
	menuItemRepo := repositories.NewMenuItemRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(jwtSecret, accessTokenTTL)
	orderSvc := services.NewOrderService(orderRepo)
	analyticsSvc := analytics.NewAnalyticsService(orderRepo, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(userRepo, authSvc, cacheSvc)
	restaurantHandlers := handlers.NewRestaurantHandlers(restaurantRepo, analyticsSvc)
	menuHandlers := handlers.NewMenuHandlers(menuItemRepo, restaurantRepo)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	uploadHandlers := handlers.NewUploadHandlers(minioSvc, imageBucket)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc)
	if err != nil {
		log.Fatalf("Failed to initialize job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("job scheduler shutdown: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	api := e.Group("/api")

	// Authentication routes (no JWT required for register/login)
	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	// Public catalog routes
	api.GET("/restaurants", restaurantHandlers.ListRestaurants)
	api.GET("/restaurants/:id", restaurantHandlers.GetRestaurant)
	api.GET("/restaurants/:id/menu", menuHandlers.ListMenu)
	api.GET("/menu-items/:id", menuHandlers.GetMenuItem)

	// Protected routes (require JWT)
	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc))

	protected.GET("/auth/me", authHandlers.Me)

	protected.POST("/restaurants", restaurantHandlers.CreateRestaurant)
	protected.DELETE("/restaurants/:id", restaurantHandlers.DeleteRestaurant)
	protected.GET("/restaurants/:id/stats", restaurantHandlers.GetRestaurantStats)

	protected.POST("/restaurants/:id/menu", menuHandlers.CreateMenuItem)
	protected.DELETE("/menu-items/:id", menuHandlers.DeleteMenuItem)

	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders/:id", orderHandlers.GetOrder)
	protected.GET("/orders/customer/:customer_id", orderHandlers.GetCustomerOrders)
	protected.GET("/orders/restaurant/:restaurant_id", orderHandlers.GetRestaurantOrders)
	protected.PATCH("/orders/:id", orderHandlers.UpdateOrderStatus)
	protected.DELETE("/orders/:id", orderHandlers.DeleteOrder)

	protected.POST("/uploads/images", uploadHandlers.UploadImage)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	log.Fatal(e.Start(":" + port))
}
