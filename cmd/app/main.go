package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry/cmd"
	adapterhttp "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres/invoicerepo"
	"laundry/internal/adapters/out/postgres/notificationrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/senderrepo"
	"laundry/internal/adapters/out/postgres/templaterepo"
	"laundry/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := connectDB(configs)
	migrateSchema(db)

	root := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := jobs.NewJobManager(root.CreateProcessRetryQueueCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	server := adapterhttp.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateRecordPaymentCommandHandler(),
		root.CreateUpsertSenderCommandHandler(),
		root.CreateTestSenderConnectionCommandHandler(),
		root.CreateUpsertTemplateCommandHandler(),
		root.CreateDeleteTemplateCommandHandler(),
		root.CreateResendNotificationCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetNotificationHistoryQueryHandler(),
		root.CreateGetSendersQueryHandler(),
		root.CreateGetTemplatesQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	// Jobs first so no retry commits race the closing DB pool, then the
	// HTTP server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	jobManager.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:        envOrDefault("HTTP_PORT", "8080"),
		DBHost:          envOrDefault("DB_HOST", "localhost"),
		DBPort:          envOrDefault("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envOrDefault("DB_SSLMODE", "disable"),
		TaxRate:         decimalEnv("TAX_RATE", "0.18"),
		ProviderTimeout: durationEnv("PROVIDER_TIMEOUT", 10*time.Second),
		RetryBaseDelay:  durationEnv("RETRY_BASE_DELAY", time.Minute),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func decimalEnv(key, fallback string) decimal.Decimal {
	raw := envOrDefault(key, fallback)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, raw, err)
	}
	return value
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, raw, err)
	}
	return value
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func migrateSchema(db *gorm.DB) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.LineItemDTO{},
		&invoicerepo.PaymentDTO{},
		&notificationrepo.RecordDTO{},
		&notificationrepo.QueueEntryDTO{},
		&senderrepo.SenderDTO{},
		&templaterepo.TemplateDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
}
