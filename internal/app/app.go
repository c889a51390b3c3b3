package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gallery-backend/internal/config"
	"gallery-backend/internal/db"
	"gallery-backend/internal/handlers"
	"gallery-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Run() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println(cfg)

	// Init DB
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Services
	userService := services.NewUserService(pool)
	photoService := services.NewPhotoService(pool)
	tokenService := services.NewTokenService(cfg.JWTSecret)

	// Fiber App
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Ensure upload dir exists and serve uploaded files
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Printf("Warning: failed to create upload dir: %v", err)
	}
	app.Static("/uploads", cfg.UploadDir)

	uploadCfg := handlers.UploadConfig{Dir: cfg.UploadDir, BaseURL: cfg.BaseURL}
	authRequired := handlers.AuthMiddleware(tokenService)

	// Routes
	api := app.Group("/api")

	// Public Routes
	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterHandler(userService))
	auth.Post("/login", handlers.LoginHandler(userService, tokenService))
	auth.Post("/change-password", authRequired, handlers.ChangePasswordHandler(userService))

	// Protected Routes
	photos := api.Group("/photos", authRequired)
	photos.Post("/", handlers.CreatePhotoHandler(photoService, uploadCfg))
	photos.Get("/", handlers.ListPhotosHandler(photoService))
	photos.Get("/:id", handlers.GetPhotoHandler(photoService))
	photos.Put("/:id", handlers.UpdatePhotoHandler(photoService, uploadCfg))
	photos.Delete("/:id", handlers.DeletePhotoHandler(photoService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Start Server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
