package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Database ---
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Variant{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Event Publisher (optional) ---
	// With no broker URL configured the service runs without change
	// events; a broker failure at startup is not fatal either.
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	variantRepo := repositories.NewGORMVariantRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	txManager := repositories.NewGormTxManager(db)

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo, variantRepo, txManager, events)
	searchService := services.NewSearchService(productRepo, variantRepo)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(catalogService)
	variantHandler := handlers.NewVariantHandler(catalogService)
	searchHandler := handlers.NewSearchHandler(searchService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// Public routes: signup/signin and search
	authHandler.RegisterRoutes(app)

	api := app.Group("/api")
	searchHandler.RegisterRoutes(api)

	// Catalog routes require a bearer token
	protected := api.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protected)
	variantHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Catch-all for unmatched routes
	app.Use(handlers.NotFoundHandler)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
