package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inventory-dashboard-api/internal/application/auth"
	"github.com/inventory-dashboard-api/internal/config"
	"github.com/inventory-dashboard-api/internal/infrastructure/dynamo"
	"github.com/inventory-dashboard-api/internal/infrastructure/products"
	s3infra "github.com/inventory-dashboard-api/internal/infrastructure/s3"
	"github.com/inventory-dashboard-api/internal/infrastructure/smtp"
	"github.com/inventory-dashboard-api/internal/pkg/events"
	transporthttp "github.com/inventory-dashboard-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// Event bus: the welcome email rides on the verification event instead of
	// blocking the verify response path.
	bus := events.NewBus()
	bus.Subscribe(auth.TopicUserVerified, auth.WelcomeEmailListener(mailer))

	deps := &transporthttp.Deps{
		OTPRepo:       dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.OTPs),
		UserRepo:      dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		ProductSource: newProductSource(cfg),
		Mailer:        mailer,
		Bus:           bus,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, products=%s)", cfg.AppPort, cfg.AppEnv, cfg.ProductSource)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newProductSource selects the catalog backend from PRODUCT_SOURCE. Unknown
// values fall through to the remote API.
func newProductSource(cfg *config.Config) products.Source {
	switch cfg.ProductSource {
	case "file":
		return products.NewFileSource(cfg.ProductFilePath)
	case "s3":
		s3Client := s3infra.NewClient(cfg)
		store := s3infra.NewStore(s3Client, cfg.ProductS3Bucket)
		return products.NewS3Source(store, cfg.ProductS3Key)
	default:
		return products.NewRemoteSource(cfg.ProductAPIURL)
	}
}
