package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"decaf/internal/config"
	"decaf/internal/database"
	"decaf/internal/handlers"
	"decaf/internal/middleware"
	"decaf/internal/repositories"
	"decaf/internal/services"
	"decaf/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// The API serves requests without a broker; brew events are simply
	// skipped when none is reachable.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("RabbitMQ unavailable, brew events disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	catRepo := repositories.NewGORMCatRepository(db)
	prefsRepo := repositories.NewGORMPreferencesRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.BcryptCost)
	recipeService := services.NewRecipeService(recipeRepo, mqClient)
	tagService := services.NewTagService(tagRepo)
	catService := services.NewCatService(catRepo)
	prefsService := services.NewPreferencesService(prefsRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	tagHandler := handlers.NewTagHandler(tagService)
	catHandler := handlers.NewCatHandler(catService)
	prefsHandler := handlers.NewPreferencesHandler(prefsService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	auth := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(apiV1)
	recipeHandler.RegisterRoutes(apiV1, auth)
	tagHandler.RegisterRoutes(apiV1)
	catHandler.RegisterRoutes(apiV1, auth)
	prefsHandler.RegisterRoutes(apiV1, auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Brew event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for brew events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received brew event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeBrewEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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
