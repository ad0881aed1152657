package config

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Config holds the service configuration read from the environment.
type Config struct {
	Port                string
	CredentialsPath     string
	InvoiceNotifyUserID string // fallback recipient when an invoice has no userId
	ManagerRole         string
	WebhookSecret       string // empty disables auth on the event endpoints
}

// Load reads configuration from environment variables with local defaults.
func Load() *Config {
	cfg := &Config{
		Port:                os.Getenv("PORT"),
		CredentialsPath:     os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		InvoiceNotifyUserID: os.Getenv("INVOICE_NOTIFY_USER_ID"),
		ManagerRole:         os.Getenv("MANAGER_ROLE"),
		WebhookSecret:       os.Getenv("WEBHOOK_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = "./serviceAccountKey.json"
	}
	if cfg.ManagerRole == "" {
		cfg.ManagerRole = "manager"
	}
	return cfg
}

// FirebaseClients bundles the Firebase Admin SDK clients the service needs.
// They are constructed once at startup and injected into the repositories and
// services that use them.
type FirebaseClients struct {
	App       *firebase.App
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// NewFirebaseClients initializes the Firebase Admin SDK and returns ready
// Firestore and Messaging clients.
func NewFirebaseClients(ctx context.Context, cfg *Config) (*FirebaseClients, error) {
	// Check if credentials file exists
	if _, err := os.Stat(cfg.CredentialsPath); os.IsNotExist(err) {
		log.Printf("⚠️  Firebase credentials not found at %s", cfg.CredentialsPath)
		log.Println("📝 Please download your Firebase service account key and place it at the specified path")
		return nil, err
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Printf("Error initializing Firebase app: %v", err)
		return nil, err
	}
	log.Println("✅ Firebase app initialized")

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		log.Printf("Error initializing Firestore: %v", err)
		return nil, err
	}
	log.Println("✅ Firestore client initialized")

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("Error initializing Messaging: %v", err)
		firestoreClient.Close()
		return nil, err
	}
	log.Println("✅ Firebase Messaging client initialized")

	return &FirebaseClients{
		App:       app,
		Firestore: firestoreClient,
		Messaging: messagingClient,
	}, nil
}

// Close releases the Firestore connection.
func (c *FirebaseClients) Close() {
	if c.Firestore != nil {
		c.Firestore.Close()
		log.Println("🔌 Firestore connection closed")
	}
}
