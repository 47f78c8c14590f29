package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Josepharis/siparis/internal/app/notifications"
	"github.com/Josepharis/siparis/internal/config"
	notifications_http "github.com/Josepharis/siparis/internal/handler/http/notifications"
	kafka_handler "github.com/Josepharis/siparis/internal/handler/kafka"
	"github.com/Josepharis/siparis/internal/infrastructure/database"
	kafka_infra "github.com/Josepharis/siparis/internal/infrastructure/kafka"
	"github.com/Josepharis/siparis/internal/infrastructure/push"
	"github.com/Josepharis/siparis/internal/repository/users_repo"
)

func newLogger(level string) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	return zapConfig.Build()
}

func connectDB(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.Name,
		SSLMode:  cfg.DBConfig.SSLMode,
	}

	const maxRetries = 10
	retryDelay := 5 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		db, err := database.NewPostgresDB(dbConfig)
		if err == nil {
			logger.Info("Successfully connected to PostgreSQL database!")
			return db, nil
		}
		lastErr = err
		logger.Warn("Failed to connect to database, retrying",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_in", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, lastErr
}

func runMigrations(cfg *config.Config) error {
	m, err := migrate.New(cfg.MigrationsPath, cfg.GetDBMigrationConnectionString())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

func newPushTransport(ctx context.Context, cfg *config.Config, logger *zap.Logger) (notifications.PushTransport, func() error, error) {
	switch cfg.PushTransport {
	case config.PushTransportKafka:
		producer := kafka_infra.NewProducer(cfg.GetKafkaBrokers(), logger.With(zap.String("component", "KafkaProducer")))
		transport := push.NewKafkaRelayTransport(producer, cfg.KafkaPushTopic, logger.With(zap.String("component", "KafkaRelayTransport")))
		return transport, producer.Close, nil
	default:
		transport, err := push.NewFCMTransport(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile, logger.With(zap.String("component", "FCMTransport")))
		if err != nil {
			return nil, nil, err
		}
		return transport, func() error { return nil }, nil
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()
	appLogger.Info("Notifications Service starting...", zap.String("push_transport", cfg.PushTransport))

	appLogger.Info("Waiting for database to be available...")
	db, err := connectDB(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			appLogger.Info("Database connection closed.")
		}
	}()

	appLogger.Info("Running database migrations...")
	if err := runMigrations(cfg); err != nil {
		appLogger.Fatal("Database migrations failed", zap.Error(err))
	}
	appLogger.Info("Database migrations completed successfully (or no new migrations).")

	topicsCtx, cancelTopics := context.WithTimeout(context.Background(), 10*time.Second)
	err = kafka_infra.EnsureTopics(topicsCtx, cfg.GetKafkaBrokers(), cfg.KafkaTopics(), appLogger)
	cancelTopics()
	if err != nil {
		appLogger.Fatal("Failed to ensure Kafka topics", zap.Error(err))
	}

	ctxMain, cancelMain := context.WithCancel(context.Background())
	defer cancelMain()

	transport, closeTransport, err := newPushTransport(ctxMain, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize push transport", zap.Error(err))
	}
	defer func() {
		if err := closeTransport(); err != nil {
			appLogger.Error("Error closing push transport", zap.Error(err))
		}
	}()

	userRepository := users_repo.NewUserRepository(db)

	dispatcher := notifications.NewDispatcher(
		userRepository,
		transport,
		appLogger.With(zap.String("component", "Dispatcher")),
	)
	notificationService := notifications.NewNotificationService(
		userRepository,
		transport,
		appLogger.With(zap.String("component", "NotificationService")),
	)
	appLogger.Info("Notification dispatcher and service initialized.")

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           notifications_http.NewRouter(notificationService, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	orderChangeConsumer := kafka_infra.NewConsumer(
		cfg.GetKafkaBrokers(),
		cfg.KafkaOrderEventsTopic,
		cfg.KafkaConsumerGroup,
		appLogger.With(zap.String("component", "OrderChangeConsumer")),
	)
	orderChangeHandler := kafka_handler.OrderChangeMessageHandler(
		dispatcher,
		appLogger.With(zap.String("component", "OrderChangeHandler")),
	)

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		appLogger.Info("Starting Order Change Kafka Consumer...")
		if err := orderChangeConsumer.Start(ctxMain, orderChangeHandler); err != nil {
			appLogger.Error("Order Change Kafka Consumer failed", zap.Error(err))
		}
		appLogger.Info("Order Change Kafka Consumer stopped.")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	appLogger.Info("Shutting down application...")

	orderChangeConsumer.Stop()
	cancelMain()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		appLogger.Info("HTTP server gracefully shut down.")
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		appLogger.Warn("Order Change Kafka Consumer did not stop before the shutdown deadline.")
	}

	appLogger.Info("Application gracefully shut down.")
}
