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

	"github.com/Powromita/EazyVenue/config"
	"github.com/Powromita/EazyVenue/internal/auth"
	"github.com/Powromita/EazyVenue/internal/cache"
	"github.com/Powromita/EazyVenue/internal/consumer"
	"github.com/Powromita/EazyVenue/internal/handler"
	"github.com/Powromita/EazyVenue/internal/logging"
	"github.com/Powromita/EazyVenue/internal/metrics"
	"github.com/Powromita/EazyVenue/internal/middleware"
	"github.com/Powromita/EazyVenue/internal/realtime"
	"github.com/Powromita/EazyVenue/internal/repository"
	"github.com/Powromita/EazyVenue/internal/service"
	"github.com/Powromita/EazyVenue/pkg/database"
	"github.com/Powromita/EazyVenue/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "eazyvenue: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close(db)

	if len(args) > 0 && args[0] == "seed-availability" {
		return seedAvailability(cfg, db, logger)
	}
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q", args[0])
	}

	return serve(cfg, db, logger)
}

// seedAvailability extends every venue's AVAILABLE horizon and exits.
func seedAvailability(cfg *config.Config, db *gorm.DB, logger *zerolog.Logger) error {
	venueSvc := service.NewVenueService(
		repository.NewVenueRepository(db),
		repository.NewAvailabilityRepository(db),
		repository.NewBookingRepository(db),
		nil,
		nil,
		cfg.Booking.HorizonDays,
		logging.Component(logger, "seed"),
	)
	created, err := venueSvc.SeedAvailability(context.Background())
	if err != nil {
		return fmt.Errorf("seed availability: %w", err)
	}
	logger.Info().Int64("created", created).Int("horizon_days", cfg.Booking.HorizonDays).Msg("availability seeded")
	return nil
}

func serve(cfg *config.Config, db *gorm.DB, logger *zerolog.Logger) error {
	if cfg.Metrics.Enabled {
		metrics.Register()
	}

	// Realtime: in-process hub, fanned out through RabbitMQ when configured
	hub := realtime.NewHub(logging.Component(logger, "realtime"))
	var (
		notifier     service.AvailabilityNotifier = hub
		mqConsumer   *rabbitmq.Consumer
		consumerDone <-chan struct{}
	)

	if cfg.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return fmt.Errorf("connect rabbitmq publisher: %w", err)
		}
		defer publisher.Close()

		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "availability.*")
		if err != nil {
			return fmt.Errorf("connect rabbitmq consumer: %w", err)
		}

		msgs, err := mqConsumer.Consume()
		if err != nil {
			mqConsumer.Close()
			return fmt.Errorf("start consuming: %w", err)
		}
		consumerDone = consumer.NewAvailabilityConsumer(hub, logging.Component(logger, "consumer")).Start(msgs)
		notifier = realtime.NewBrokerNotifier(publisher, hub, logging.Component(logger, "broker"))
		logger.Info().Str("exchange", cfg.RabbitMQ.Exchange).Str("queue", mqConsumer.Queue()).Msg("rabbitmq fan-out enabled")
	}

	// Catalog cache
	var catalog *cache.VenueCache
	if cfg.Redis.Address != "" {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Address).Msg("redis unavailable, catalog cache disabled")
		} else {
			catalog = cache.NewVenueCache(client, cfg.Redis.TTL)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	availRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	bookingSvc := service.NewBookingService(bookingRepo, venueRepo, availRepo, userRepo, notifier, logging.Component(logger, "booking"))
	venueSvc := service.NewVenueService(venueRepo, availRepo, bookingRepo, catalog, notifier, cfg.Booking.HorizonDays, logging.Component(logger, "venue"))
	authSvc := service.NewAuthService(userRepo, tokens, logging.Component(logger, "auth"))
	profileSvc := service.NewProfileService(userRepo, catalog, logging.Component(logger, "profile"))

	// Echo
	httpLog := logging.Component(logger, "http")
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(httpLog)
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(httpLog))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))
	if cfg.Metrics.Enabled {
		e.Use(middleware.Metrics())
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		code, status := http.StatusOK, "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			code, status = http.StatusServiceUnavailable, "degraded"
		}
		return c.JSON(code, map[string]string{
			"status":  status,
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	handler.NewAuthHandler(authSvc, limiter).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc, tokens, limiter).RegisterRoutes(e)
	handler.NewVenueHandler(venueSvc, bookingSvc, tokens).RegisterRoutes(e)
	handler.NewVendorHandler(venueSvc, bookingSvc, profileSvc, tokens).RegisterRoutes(e)
	realtime.NewHandler(hub, cfg.Server.AllowedOrigins).RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("db_driver", cfg.Database.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if mqConsumer != nil {
		mqConsumer.Close()
		select {
		case <-consumerDone:
		case <-ctx.Done():
		}
	}
	logger.Info().Msg("server stopped")
	return nil
}
