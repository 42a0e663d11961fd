package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/commerce"
	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/social"
	userUseCase "github.com/amirhossein-jamali/socialhub/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/watch"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/notification"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/presence"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/storage"
	timeProvider "github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))

	tp := timeProvider.NewRealTimeProvider()
	ctx := context.Background()

	dbManager := database.NewManager(&database.Config{
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		SlowThreshold:   time.Duration(cfg.Database.SlowThresholdMs) * time.Millisecond,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
		TxMaxRetries:    cfg.Ledger.MaxRetries,
	}, appLogger, tp)

	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Warn("Failed to close database", map[string]any{"error": err.Error()})
		}
	}()

	if err := dbManager.MigrationManager().MigrateAll(ctx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	uow := dbManager.CreateUnitOfWork()

	// Optional collaborators. Each one degrades to a no-op when unconfigured.
	var redisClient *redis.Client
	var presenceTracker coreport.PresenceTracker
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLogger.Warn("Redis is unreachable, presence and rate limits degrade", map[string]any{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
		}
		presenceTracker = presence.NewRedisPresence(redisClient, cfg.Redis.PresenceTTL, tp)
	}

	var fileStorage coreport.FileStorage = storage.DisabledStorage{}
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3Storage(ctx, storage.Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			UseSSL:          cfg.Storage.UseSSL,
		}, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize file storage", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		fileStorage = s3Storage
	}

	var channels notification.FanOut
	if cfg.SMTP.Enabled {
		channels = append(channels, notification.NewEmailNotifier(notification.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, appLogger))
	}
	var kafkaNotifier *notification.KafkaNotifier
	if cfg.Kafka.Enabled {
		kafkaNotifier = notification.NewKafkaNotifier(notification.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		channels = append(channels, kafkaNotifier)
	}
	var notifier coreport.Notifier
	var asyncNotifier *notification.AsyncNotifier
	if len(channels) > 0 {
		asyncNotifier = notification.NewAsyncNotifier(channels, appLogger, 0)
		notifier = asyncNotifier
	}

	// Use cases
	serializer := ledger.NewSerializer(appLogger, cfg.Ledger.QueueSize).WithIdleTimeout(cfg.Ledger.IdleTimeout)
	ledgerService := ledger.NewLedgerService(uow, serializer, tp, appLogger, cfg.Ledger.HistoryLimit)
	commerceService := commerce.NewCommerceService(uow, ledgerService, fileStorage, tp, appLogger)
	socialService := social.NewSocialService(uow, notifier, tp, appLogger)
	watchService := watch.NewWatchService(uow, notifier, tp, appLogger)
	users := userUseCase.NewUserUseCase(uow, presenceTracker, notifier, tp, appLogger)

	if err := migration.SeedDefaultUsers(ctx, users); err != nil {
		appLogger.Error("Failed to create default users", map[string]any{"error": err.Error()})
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	router.Use(middleware.BodyLimit(cfg.Server.MaxUploadMB << 20))

	deps := routes.Dependencies{
		Tokens:     middleware.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp),
		Users:      users,
		Logger:     appLogger,
		RateLimit:  cfg.Redis.RateLimit,
		RateWindow: cfg.Redis.RateWindow,
	}
	if redisClient != nil {
		deps.Redis = redisClient
	}
	routes.SetupRoutes(router, routes.Handlers{
		Wallet:   handler.NewWalletHandler(ledgerService, appLogger),
		Commerce: handler.NewCommerceHandler(commerceService, appLogger),
		Social:   handler.NewSocialHandler(socialService, appLogger),
		Watch:    handler.NewWatchHandler(watchService, appLogger),
		User:     handler.NewUserHandler(users, appLogger),
		Health:   handler.NewHealthHandler(dbManager, appLogger),
	}, deps)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	// In-flight requests are done; drain queued ledger work, then deliveries
	ledgerService.Shutdown()
	if asyncNotifier != nil {
		asyncNotifier.Wait()
	}
	if kafkaNotifier != nil {
		if err := kafkaNotifier.Close(); err != nil {
			appLogger.Warn("Failed to close kafka writer", map[string]any{"error": err.Error()})
		}
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missing = append(missing, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missing = append(missing, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}

	required := []struct {
		value, key, env string
	}{
		{cfg.Database.Host, "database.host", "SH_DB_HOST"},
		{cfg.Database.Port, "database.port", "SH_DB_PORT"},
		{cfg.Database.Username, "database.username", "SH_DB_USERNAME"},
		{cfg.Database.Password, "database.password", "SH_DB_PASSWORD"},
		{cfg.Database.Database, "database.database", "SH_DB_NAME"},
		{cfg.Auth.JWTSecret, "auth.jwtSecret", "SH_JWT_SECRET"},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, fmt.Sprintf("%s (or %s environment variable)", r.key, r.env))
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missing = append(missing, "database.queryTimeout")
	}
	if cfg.Ledger.QueueSize <= 0 {
		missing = append(missing, "ledger.queueSize")
	}
	if cfg.Auth.TokenTTL == 0 {
		missing = append(missing, "auth.tokenTTL")
	}
	if cfg.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}
	if cfg.Storage.Enabled && cfg.Storage.Bucket == "" {
		missing = append(missing, "storage.bucket")
	}
	if cfg.SMTP.Enabled && (cfg.SMTP.Host == "" || cfg.SMTP.From == "") {
		missing = append(missing, "smtp.host and smtp.from")
	}
	if cfg.Kafka.Enabled && (len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "") {
		missing = append(missing, "kafka.brokers and kafka.topic")
	}

	switch cfg.Environment {
	case config.Development, config.Production, config.Test:
	default:
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	if cfg.Environment == config.Production {
		var warnings []string
		switch strings.ToLower(cfg.Database.SSLMode) {
		case "require", "verify-ca", "verify-full":
		default:
			warnings = append(warnings, "database.sslMode should be 'require', 'verify-ca', or 'verify-full' in production")
		}
		if len(cfg.Auth.JWTSecret) < 32 {
			warnings = append(warnings, "auth.jwtSecret should be at least 32 bytes in production")
		}
		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
