package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/john9012002/DoAnChuyenNganh/internal/handler"
	"github.com/john9012002/DoAnChuyenNganh/internal/middleware"
	"github.com/john9012002/DoAnChuyenNganh/internal/model"
	"github.com/john9012002/DoAnChuyenNganh/internal/scraper"
	"github.com/john9012002/DoAnChuyenNganh/internal/store"
	"github.com/john9012002/DoAnChuyenNganh/pkg/config"
	"github.com/john9012002/DoAnChuyenNganh/pkg/database"
	"github.com/john9012002/DoAnChuyenNganh/pkg/jwtutil"
	"github.com/john9012002/DoAnChuyenNganh/pkg/logger"
	"github.com/john9012002/DoAnChuyenNganh/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting estate-api...", cfg.LogConfig()...)

	// Connect to the database; blocks with capped exponential backoff
	// until the store is reachable.
	db := database.Connect(&cfg.DB, log)
	if err := database.Migrate(db, &model.User{}, &model.Listing{}); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Construct the stores and utilities once at startup and inject them
	// into the handlers.
	users := store.NewGormUserStore(db)
	listings := store.NewGormListingStore(db)
	jwt := jwtutil.NewJWTUtil(&cfg.JWT)
	runner := scraper.NewScriptRunner(cfg.Scraper.Command, cfg.Scraper.Script, cfg.Scraper.Dir)

	authHandler := handler.NewAuthHandler(users, jwt)
	listingHandler := handler.NewListingHandler(listings)
	scrapeHandler := handler.NewScrapeHandler(runner, listings)
	adminHandler := handler.NewAdminHandler(users, listings)
	subscribeHandler := handler.NewSubscribeHandler(users)
	healthHandler := handler.NewHealthHandler(func() error { return database.Ping(db) })

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Operational endpoints
	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Public API
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/subscribe", subscribeHandler.Subscribe)
	api.GET("/listings", listingHandler.ListListings)
	api.GET("/listings/:id", listingHandler.GetListing)
	api.GET("/scrape", scrapeHandler.Scrape)

	// Admin API - bearer token with the admin role required
	admin := api.Group("/admin", middleware.RequireAdmin(jwt))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/listings", adminHandler.ListListings)
	admin.POST("/listings", adminHandler.CreateListing)
	admin.PUT("/listings/:id", adminHandler.UpdateListing)
	admin.DELETE("/listings/:id", adminHandler.DeleteListing)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
