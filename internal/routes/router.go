package routes

import (
	"net/http"

	"accessmap/internal/cache"
	"accessmap/internal/config"
	"accessmap/internal/delivery/http/handler"
	"accessmap/internal/geocoding"
	"accessmap/internal/infrastructure/database/postgres"
	"accessmap/internal/mailer"
	"accessmap/internal/middleware"
	"accessmap/internal/usecase/contact"
	"accessmap/internal/usecase/location"
	"accessmap/internal/usecase/review"
	"accessmap/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, cacheClient *cache.Client) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers, CORS, size cap, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	router.Static("/uploads", cfg.Uploads.Dir)

	var geocodeCache geocoding.Cache
	if cacheClient != nil {
		geocodeCache = cacheClient
	}
	geocoder := geocoding.NewNominatimProvider(&cfg.Geocoder, geocodeCache)
	mail := mailer.NewSMTPMailer(&cfg.SMTP)

	userRepository := postgres.NewUserRepository(db)
	locationRepository := postgres.NewLocationRepository(db)
	reviewRepository := postgres.NewReviewRepository(db)

	userService := user.NewService(userRepository, locationRepository, mail, cfg)
	locationService := location.NewService(locationRepository, geocoder)
	reviewService := review.NewService(reviewRepository, locationRepository)
	contactService := contact.NewService(mail)

	userHandler := handler.NewUserHandler(userService, cfg)
	locationHandler := handler.NewLocationHandler(locationService, userService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	contactHandler := handler.NewContactHandler(contactService)

	api := router.Group("")
	{
		userHandler.RegisterRoutes(api)
		locationHandler.RegisterRoutes(api)
		reviewHandler.RegisterRoutes(api)
		contactHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(userRepository))
		{
			userHandler.RegisterProtectedRoutes(protected)
			locationHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
		}
	}

	return router
}
