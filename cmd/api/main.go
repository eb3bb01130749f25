package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ArmishRehan/Coupon/internal/auth"
	"github.com/ArmishRehan/Coupon/internal/config"
	"github.com/ArmishRehan/Coupon/internal/handler"
	"github.com/ArmishRehan/Coupon/internal/model"
	"github.com/ArmishRehan/Coupon/internal/qr"
	"github.com/ArmishRehan/Coupon/internal/repository"
	"github.com/ArmishRehan/Coupon/internal/service"
	"github.com/ArmishRehan/Coupon/internal/validator"
	"github.com/ArmishRehan/Coupon/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// QR artifact generator (creates the artifact directory)
	artifacts, err := qr.NewGenerator(cfg.QR.Dir, cfg.QR.PublicPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize qr generator")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Coupon Issuance Service",
		ReadTimeout:  30 * time.Second,  // Max time to read request
		WriteTimeout: 30 * time.Second,  // Max time to write response
		IdleTimeout:  120 * time.Second, // Max time for keep-alive connections
		BodyLimit:    1 * 1024 * 1024,   // 1MB body limit (explicit, prevents large payloads)
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Generated QR artifacts are public, keyed by their random token
	app.Static(cfg.QR.PublicPath, cfg.QR.Dir)

	// Initialize validator
	validate := validator.New()

	// Identity
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMins)*time.Minute)
	authenticated := auth.Authenticate(tokens)

	// Layered wiring: repositories -> services -> handlers
	userRepo := repository.NewUserRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)

	authService := service.NewAuthService(userRepo, tokens)
	couponService := service.NewCouponService(pool, couponRepo, requestRepo, artifacts, cfg.Coupon.ApprovalMode)
	requestService := service.NewRequestService(requestRepo)

	authHandler := handler.NewAuthHandler(authService, validate)
	couponHandler := handler.NewCouponHandler(couponService, validate)
	requestHandler := handler.NewRequestHandler(requestService, validate)
	brandHandler := handler.NewBrandHandler(brandRepo)
	healthHandler := handler.NewHealthHandler(pool)

	app.Get("/health", healthHandler.Check)

	// Auth routes (no token required)
	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Brand/branch reference lookups (public)
	brands := app.Group("/api/brands")
	brands.Get("/", brandHandler.ListBrands)
	brands.Get("/:brandId/branches", brandHandler.ListBranches)

	// Coupon routes. Fixed paths are registered before :id routes so fiber
	// does not swallow them as parameters.
	coupons := app.Group("/api/coupons", authenticated)
	coupons.Post("/request", auth.RequireRole(model.RoleStoreUser), requestHandler.Submit)
	coupons.Get("/request/creator", auth.RequireRole(model.RoleCreator), requestHandler.ListPending)
	coupons.Get("/request/admin", auth.RequireRole(model.RoleAdmin), requestHandler.ListAll)
	coupons.Post("/", auth.RequireRole(model.RoleCreator), couponHandler.Create)
	coupons.Get("/my", auth.RequireRole(model.RoleStoreUser), couponHandler.ListMine)
	coupons.Get("/creator", auth.RequireRole(model.RoleCreator), couponHandler.ListByCreator)
	coupons.Get("/all", auth.RequireRole(model.RoleAdmin), couponHandler.ListAll)
	coupons.Put("/:id/status", auth.RequireRole(model.RoleAdmin), couponHandler.UpdateStatus)
	coupons.Put("/:id/redeem", auth.RequireRole(model.RoleStoreUser), couponHandler.Redeem)
	if cfg.Coupon.ApprovalMode == config.ApprovalModeTwoStep {
		coupons.Put("/:id/activate", auth.RequireRole(model.RoleCreator), couponHandler.Activate)
	}
	coupons.Put("/:id", auth.RequireRole(model.RoleAdmin), couponHandler.Update)

	// Start server with graceful shutdown
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("approval_mode", cfg.Coupon.ApprovalMode).
			Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
