package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	availabilityUseCase "github.com/amirhossein-jamali/venue-reservation/internal/domain/usecase/availability"
	chatUseCase "github.com/amirhossein-jamali/venue-reservation/internal/domain/usecase/chat"
	reservationUseCase "github.com/amirhossein-jamali/venue-reservation/internal/domain/usecase/reservation"
	venueUseCase "github.com/amirhossein-jamali/venue-reservation/internal/domain/usecase/venue"

	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore"
	badgerstore "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/badger"
	redisstore "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/redis"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
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

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{
			"error": err.Error(),
		})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := timeProvider.LoadLocation(cfg.Reservation.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Reservation.Timezone, err)
	}
	tp := timeProvider.NewRealTimeProvider(loc)

	// Metrics
	var (
		recorder        *metrics.Recorder
		metricsRecorder coreport.MetricsRecorder = metrics.NoopRecorder{}
	)
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
		metricsRecorder = recorder
	}

	// Key-value store holding the transaction ledger and reservations
	store, err := kvstore.New(ctx, kvstore.Config{
		Driver:        cfg.Store.Driver,
		SlowThreshold: cfg.Store.SlowThresholdMs,
		Redis: redisstore.Config{
			Addr:         cfg.Store.Redis.Addr,
			Password:     cfg.Store.Redis.Password,
			DB:           cfg.Store.Redis.DB,
			PoolSize:     cfg.Store.Redis.PoolSize,
			DialTimeout:  cfg.Store.Redis.DialTimeout,
			ReadTimeout:  cfg.Store.Redis.ReadTimeout,
			WriteTimeout: cfg.Store.Redis.WriteTimeout,
		},
		Badger: badgerstore.Config{
			Path:           cfg.Store.Badger.Path,
			InMemory:       cfg.Store.Badger.InMemory,
			GCInterval:     cfg.Store.Badger.GCInterval,
			GCDiscardRatio: cfg.Store.Badger.GCDiscardRatio,
		},
	}, appLogger, tp)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			appLogger.Error("Failed to close store", map[string]any{"error": err.Error()})
		}
	}()

	// Venue directory database
	dbManager := database.NewManager(databaseConfig(cfg), appLogger, tp)
	db, err := dbManager.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.MigrationManager().MigrateAll(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if cfg.Database.SeedVenues {
		if err := migration.SeedDefaultVenues(ctx, db, tp); err != nil {
			appLogger.Error("Failed to seed default venues", map[string]any{"error": err.Error()})
		}
	}
	if recorder != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := recorder.RegisterDBStats(sqlDB, cfg.Database.Driver); err != nil {
				appLogger.Warn("Database stats not exported", map[string]any{"error": err.Error()})
			}
		}
	}

	// Repositories
	ledger := repository.NewTransactionLedger(store, appLogger)
	reservationRepo := repository.NewReservationRepository(store, appLogger)
	venueRepo := repository.NewVenueRepository(db, appLogger)

	// Outbound gateways
	paymentGateway, err := newPaymentGateway(cfg, appLogger)
	if err != nil {
		return err
	}
	messenger, validateSignature, err := newMessenger(cfg, appLogger)
	if err != nil {
		return err
	}
	publisher, err := newEventPublisher(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Failed to close event publisher", map[string]any{"error": err.Error()})
		}
	}()

	// Use cases
	reservationService := reservationUseCase.NewService(reservationUseCase.Dependencies{
		Ledger:       ledger,
		Reservations: reservationRepo,
		Venues:       venueRepo,
		Payment:      paymentGateway,
		Messenger:    messenger,
		Events:       publisher,
		Metrics:      metricsRecorder,
		TimeProvider: tp,
		Logger:       appLogger,
	}, reservationUseCase.Config{
		TransactionTTL: cfg.Reservation.TransactionTTL,
		Currency:       cfg.Reservation.Currency,
		ConfirmURL:     cfg.ConfirmURL(),
		Location:       loc,
		Retry: reservationUseCase.RetryConfig{
			MaxRetries:    cfg.Reservation.MaxRetries,
			RetryInterval: cfg.Reservation.RetryIntervalMs,
			MaxInterval:   cfg.Reservation.MaxRetryIntervalMs,
			JitterFactor:  cfg.Reservation.JitterFactor,
		},
	})
	availabilityService := availabilityUseCase.NewService(reservationRepo, metricsRecorder, tp, appLogger, loc)
	venueService := venueUseCase.NewService(venueRepo, appLogger)

	// HTTP handlers
	handlers := routes.Handlers{
		Reservation: handler.NewReservationHandler(reservationService, appLogger),
		Place:       handler.NewPlaceHandler(venueService, availabilityService, appLogger),
		User:        handler.NewUserHandler(availabilityService, appLogger),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"store":    store,
			"database": dbManager,
		}, 0),
	}
	if validateSignature != nil {
		chatService := chatUseCase.NewService(venueRepo, messenger, appLogger, chatUseCase.Config{
			ReserveURL: cfg.Messaging.Line.ReserveURL,
			ManageURL:  cfg.Messaging.Line.ManageURL,
		})
		handlers.Webhook = handler.NewWebhookHandler(chatService, validateSignature, appLogger)
	}

	var opts routes.Options
	var extra []gin.HandlerFunc
	if recorder != nil {
		opts.Metrics = gin.WrapH(recorder.Handler())
		extra = append(extra, recorder.Middleware())
	}
	if cfg.RateLimit.Enabled {
		opts.ReserveLimiter = middleware.NewRateLimiter(middleware.RateLimit{
			RequestsPerMinute: float64(cfg.RateLimit.RequestsPerMinute),
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           cfg.RateLimit.IdleTTL,
		})
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, cfg.CORS.AllowedOrigins, extra...)
	routes.SetupRoutes(router, handlers, opts)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":     server.Addr,
			"env":      cfg.Environment,
			"store":    cfg.Store.Driver,
			"payment":  cfg.Payment.Provider,
			"timezone": loc.String(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}

func databaseConfig(cfg *config.Config) *database.Config {
	port, _ := strconv.Atoi(cfg.Database.Port)
	return &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.PublicURL == "" {
		missingConfigs = append(missingConfigs, "server.publicUrl (or RSV_SERVER_PUBLIC_URL)")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}
	if cfg.Reservation.TransactionTTL <= 0 {
		missingConfigs = append(missingConfigs, "reservation.transactionTtl")
	}
	if cfg.Reservation.Currency == "" {
		missingConfigs = append(missingConfigs, "reservation.currency")
	}

	switch cfg.Store.Driver {
	case kvstore.DriverMemory, kvstore.DriverBadger:
	case kvstore.DriverRedis:
		if cfg.Store.Redis.Addr == "" {
			missingConfigs = append(missingConfigs, "store.redis.addr (or RSV_REDIS_ADDR)")
		}
	default:
		return fmt.Errorf("invalid store driver: %s, must be one of: %s, %s, or %s",
			cfg.Store.Driver, kvstore.DriverMemory, kvstore.DriverRedis, kvstore.DriverBadger)
	}

	switch cfg.Payment.Provider {
	case providerLinePay:
		if cfg.Payment.LinePay.ChannelID == "" {
			missingConfigs = append(missingConfigs, "payment.linePay.channelId (or RSV_LINEPAY_CHANNEL_ID)")
		}
		if cfg.Payment.LinePay.ChannelSecret == "" {
			missingConfigs = append(missingConfigs, "payment.linePay.channelSecret (or RSV_LINEPAY_CHANNEL_SECRET)")
		}
	case providerOmise:
		if cfg.Payment.Omise.SecretKey == "" {
			missingConfigs = append(missingConfigs, "payment.omise.secretKey (or RSV_OMISE_SECRET_KEY)")
		}
	default:
		return fmt.Errorf("invalid payment provider: %s, must be %s or %s",
			cfg.Payment.Provider, providerLinePay, providerOmise)
	}

	if cfg.Messaging.Line.Enabled {
		if cfg.Messaging.Line.ChannelAccessToken == "" {
			missingConfigs = append(missingConfigs, "messaging.line.channelAccessToken (or RSV_LINE_CHANNEL_ACCESS_TOKEN)")
		}
		if cfg.Messaging.Line.ChannelSecret == "" {
			missingConfigs = append(missingConfigs, "messaging.line.channelSecret (or RSV_LINE_CHANNEL_SECRET)")
		}
	}
	if cfg.Events.Kafka.Enabled && len(cfg.Events.Kafka.Brokers) == 0 {
		missingConfigs = append(missingConfigs, "events.kafka.brokers (or RSV_KAFKA_BROKERS)")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		if cfg.Store.Driver == kvstore.DriverMemory {
			warnings = append(warnings, "store.driver memory loses reservations on restart")
		}
		if cfg.Database.Driver == database.DriverPostgres {
			mode := strings.ToLower(cfg.Database.SSLMode)
			if mode != "require" && mode != "verify-ca" && mode != "verify-full" {
				warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
			}
		}
		if cfg.Payment.Provider == providerLinePay && cfg.Payment.LinePay.Sandbox {
			warnings = append(warnings, "payment.linePay.sandbox is enabled in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
