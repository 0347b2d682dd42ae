package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/swagger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "kontak/docs" // generated OpenAPI definitions
	"kontak/internal/apperrors"
	"kontak/internal/handlers"
	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/services"
	"kontak/pkg/rabbitmq"
)

//	@title						Kontak API
//	@version					1.0
//	@description				Contact management REST API with bearer-token authentication.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":5000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "kontak.db")
	viper.SetDefault("TOKEN_TTL_MINUTES", 30)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	production := viper.GetString("APP_ENV") == "production"
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokenTTL := time.Duration(viper.GetInt("TOKEN_TTL_MINUTES")) * time.Minute

	// --- Initialize RabbitMQ Client (optional) ---
	// When RABBITMQ_URL is unset the service runs without event
	// publishing; the contact service skips a nil client.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		mqClient = client
		defer mqClient.Close()
	}

	// --- Initialize Repositories ---
	userRepo, contactRepo, err := newRepositories(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, tokenTTL)
	contactService := services.NewContactService(contactRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	contactHandler := handlers.NewContactHandler(contactService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.NewFiberHandler(production),
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	authRequired := middleware.AuthRequired(authService)

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired)
	contactHandler.RegisterRoutes(api, authRequired)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Documentation ---
	app.Get("/swagger/*", swagger.HandlerDefault)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(appPort)
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := runUntilStopped(app, serverErr, quit); err != nil {
		// Fall through so deferred cleanup still runs.
		log.Printf("Server error: %v", err)
		return
	}

	log.Println("Server gracefully stopped")
}

// runUntilStopped blocks until the server fails or a shutdown signal
// arrives. On a signal it shuts the app down and returns nil; a server
// error is returned to the caller instead of exiting the process, so
// deferred resource cleanup is not skipped.
func runUntilStopped(app *fiber.App, serverErr <-chan error, quit <-chan os.Signal) error {
	select {
	case err := <-serverErr:
		return err
	case <-quit:
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during Fiber shutdown: %v", err)
		}
	}
	return nil
}

// newRepositories opens the configured data store and returns the user
// and contact repositories backed by it. The "memory" driver runs
// without any database, for dependency-free local runs.
func newRepositories(driver, dsn string) (repositories.UserRepository, repositories.ContactRepository, error) {
	if driver == "memory" {
		return repositories.NewMemoryUserRepository(), repositories.NewMemoryContactRepository(), nil
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Contact{}); err != nil {
		return nil, nil, err
	}

	return repositories.NewGORMUserRepository(db), repositories.NewGORMContactRepository(db), nil
}
