package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Kentemie/Fast-and-Furious/config"
	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/cache"
	"github.com/Kentemie/Fast-and-Furious/internal/db"
	"github.com/Kentemie/Fast-and-Furious/internal/db/repos"
	"github.com/Kentemie/Fast-and-Furious/internal/logger"
	"github.com/Kentemie/Fast-and-Furious/internal/services"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/middleware"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/routes"
)

func main() {
	logger.InitializeAndConfigure()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Database
	database, err := db.New(db.Options{
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		Port:     cfg.Database.Port,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: gormlogger.Warn,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis-backed stores
	blacklist := cache.NewTokenBlacklist(cfg.Redis)
	security := cache.NewSecurityStore(cfg.Redis)
	defer func() {
		_ = blacklist.Close()
		_ = security.Close()
	}()

	// Token strategy
	tokens, err := auth.NewJWTStrategy(cfg.Auth)
	if err != nil {
		logger.Fatalf("Failed to load JWT keys: %v", err)
	}

	// Services
	userRepo := repos.NewUserRepository(database)
	userService := services.NewUserService(userRepo, auth.NewPasswordHelper(), security,
		cfg.Auth.VerificationCodeLifetime, cfg.Auth.ResetTokenLifetime)

	// Handlers
	api := handlers.NewAPIHandler(userService, tokens, blacklist, handlers.CookieSettings{
		Domain: cfg.Domain,
		Secure: !cfg.IsLocal(),
		MaxAge: cfg.Auth.RefreshTokenLifetime,
	})
	authn := middleware.NewAuthenticator(userService, tokens, blacklist)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware (logging, CORS)
	app.Use(middleware.Logger())
	if len(cfg.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
			AllowCredentials: true,
		}))
	}

	// Register versioned routes
	routes.RegisterRoutes(app,
		handlers.NewAuthHandler(api),
		handlers.NewRegisterHandler(api),
		handlers.NewVerifyHandler(api),
		handlers.NewResetHandler(api),
		handlers.NewUserHandler(api),
		authn,
	)

	// Shut down cleanly on SIGINT/SIGTERM so in-flight requests finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logger.Infof("Received signal %s, shutting down", sig)
		if err := app.Shutdown(); err != nil {
			logger.Errorf("Error during shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting API server on %s (environment: %s)", addr, cfg.Environment)
	if err := app.Listen(addr); err != nil {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Info("Server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
