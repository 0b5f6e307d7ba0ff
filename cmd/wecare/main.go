package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/wecare-app/wecare/internal/api"
	"github.com/wecare-app/wecare/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("skipping .env: %v", err)
	}

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	dbPath := getEnv("DB_PATH", filepath.Join("data", "wecare.db"))
	port := getEnv("PORT", "8080")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler, err := api.NewHandler(database, api.Config{
		SecretKey:           secretKey,
		CookieSecure:        getEnvBool("COOKIE_SECURE", false),
		ClassifierURL:       os.Getenv("CLASSIFIER_URL"),
		ClassifierAPIKey:    os.Getenv("CLASSIFIER_API_KEY"),
		ClassifierTimeout:   getEnvDuration("CLASSIFIER_TIMEOUT", 5*time.Second),
		ClassifierCacheTTL:  getEnvDuration("CLASSIFIER_CACHE_TTL", 15*time.Minute),
		AsyncClassification: getEnvBool("ASYNC_CLASSIFICATION", true),
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}
	defer handler.Close()

	if err := bootstrapAdminIfNeeded(handler); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "WeCare",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	handler.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("WeCare listening on http://0.0.0.0:%s (db: %s)", port, dbPath)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// bootstrapAdminIfNeeded provisions the first admin account on an empty
// database and prints the one-time password to the log.
func bootstrapAdminIfNeeded(handler *api.Handler) error {
	setup := handler.SetupService()
	required, err := setup.RequiresInitialSetup()
	if err != nil {
		return err
	}
	if !required {
		return nil
	}

	email := getEnv("ADMIN_EMAIL", "admin@wecare.local")
	admin, password, err := setup.BootstrapAdmin(email)
	if err != nil {
		return err
	}
	log.Printf("created admin account %s with one-time password: %s", admin.Email, password)
	return nil
}

func resolveSecretKey() (string, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if secret == "change_me_in_production" {
		return "", errors.New("SECRET_KEY must not use the placeholder value")
	}
	if len(secret) < 32 {
		return "", errors.New("SECRET_KEY must be at least 32 bytes")
	}
	return secret, nil
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
