package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/shortstay/backend/internal/adapters/cache"
	"github.com/zatekoja/shortstay/backend/internal/adapters/database"
	"github.com/zatekoja/shortstay/backend/internal/adapters/events"
	"github.com/zatekoja/shortstay/backend/internal/api/handlers"
	"github.com/zatekoja/shortstay/backend/internal/api/middleware"
	"github.com/zatekoja/shortstay/backend/internal/api/routes"
	"github.com/zatekoja/shortstay/backend/internal/application/services"
	"github.com/zatekoja/shortstay/backend/internal/domain/providers"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
	"github.com/zatekoja/shortstay/backend/migrations"
	"github.com/zatekoja/shortstay/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.App.Name, cfg.App.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if cfg.App.MigrateOnStart {
		if err := migrateUp(cfg.Database.MigrationURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// Redis backs the residence cache and the booking event bus; both are optional
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without cache and event bus")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	// Initialize adapters
	userRepo := database.NewUserAdapter(pgClient)
	hostRepo := database.NewHostAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)
	feedbackRepo := database.NewFeedbackAdapter(pgClient)

	var residenceRepo repositories.ResidenceRepository = database.NewResidenceAdapter(pgClient)
	if cacheProvider != nil {
		residenceRepo = database.NewCachedResidenceAdapter(residenceRepo, cacheProvider, metrics)
		log.Info().Msg("residence adapter wrapped with caching layer")
	}

	// Initialize services
	hostStatusService := services.NewHostStatusService(hostRepo, bookingRepo, cfg.Booking.SuperHostThreshold, metrics)
	userService := services.NewUserService(userRepo, services.NewPasswordHasher(cfg.Security.BcryptCost))
	hostService := services.NewHostService(hostRepo, userRepo, bookingRepo)
	residenceService := services.NewResidenceService(residenceRepo, hostRepo, hostStatusService)
	bookingService := services.NewBookingService(bookingRepo, residenceRepo, userRepo, hostStatusService, eventBus, metrics)
	feedbackService := services.NewFeedbackService(feedbackRepo, bookingRepo, userRepo)

	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		// entries written by a previous schema or process may be stale
		if err := cacheInvalidationService.InvalidateResidenceCaches(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to clear residence caches")
		}
		if err := cacheInvalidationService.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation service")
			cacheInvalidationService = nil
		}
	}

	// Set up router
	router := routes.NewRouter(
		handlers.NewUserHandler(userService),
		handlers.NewHostHandler(hostService),
		handlers.NewResidenceHandler(residenceService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewFeedbackHandler(feedbackService),
		pgClient,
		metrics,
		middleware.AllowedOriginsFromEnv(),
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Int("super_host_threshold", hostStatusService.Threshold()).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}

func migrateUp(databaseURL string) error {
	runner, err := migrations.NewRunner(databaseURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := runner.Up(); err != nil {
		return err
	}
	version, _, err := runner.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Msg("database schema is up to date")
	return nil
}
