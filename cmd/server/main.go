package main

import (
	"context"
	"log"

	"github.com/Abdalrahman1723/car-service-center-app/internal/config"
	"github.com/Abdalrahman1723/car-service-center-app/internal/handlers"
	"github.com/Abdalrahman1723/car-service-center-app/internal/middleware"
	"github.com/Abdalrahman1723/car-service-center-app/internal/repository"
	"github.com/Abdalrahman1723/car-service-center-app/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	// Initialize Firebase clients
	ctx := context.Background()
	clients, err := config.NewFirebaseClients(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer clients.Close()

	// Wire repositories and services
	recipientRepo := repository.NewRecipientRepository(clients.Firestore)
	notificationRepo := repository.NewNotificationRepository(clients.Firestore)
	dispatcher := services.NewDispatcher(clients.Messaging)
	notificationService := services.NewNotificationService(recipientRepo, notificationRepo, dispatcher, cfg)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(notificationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Car Service Notification API is running",
		})
	})

	// API routes group
	api := router.Group("/api")
	{
		// Document-creation event deliveries (protected by shared secret)
		events := api.Group("/events")
		events.Use(middleware.WebhookAuth(cfg.WebhookSecret))
		{
			events.POST("/invoices", eventHandler.InvoiceCreated)
			events.POST("/timeline", eventHandler.TimelineEventCreated)
			events.POST("/notifications", eventHandler.NotificationCreated)
		}

		// Manual invocation (testing)
		notifications := api.Group("/notifications")
		{
			notifications.POST("/test", notificationHandler.SendTestNotification)
		}
	}

	// Start server
	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
