package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/stayhub/hotel-booking-system/internal/api"
	"github.com/stayhub/hotel-booking-system/internal/core/service"
	"github.com/stayhub/hotel-booking-system/internal/infrastructure/config"
	mongodb "github.com/stayhub/hotel-booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/stayhub/hotel-booking-system/internal/infrastructure/db/redis"
	"github.com/stayhub/hotel-booking-system/internal/infrastructure/queue"
	"github.com/stayhub/hotel-booking-system/pkg/logger"
)

// @title           Hotel Booking System API
// @version         1.0
// @description     Conflict-checked hotel reservation service.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// Uniqueness of accounts, hotels and booking slots is enforced by these
	// indexes; the API must not serve traffic without them.
	userRepo := mongodb.NewUserRepository(db)
	hotelRepo := mongodb.NewHotelRepository(db)
	bookingRepo := mongodb.NewBookingRepository(client, db)
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		hotelRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Notification pipeline (optional) ---
	var notifier service.BookingNotifier
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := queue.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka publisher init failed")
		}
		defer func() {
			_ = publisher.Close()
		}()

		notificationService := service.NewNotificationService(
			redisdb.NewDedupChecker(rdb),
			publisher,
			log,
		)
		workers := queue.NewNotifier(cfg.Kafka.Workers, notificationService, log)
		workers.Start(ctx)
		notifier = workers
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("booking notifications enabled")
	} else {
		log.Info().Msg("no kafka brokers configured, booking notifications disabled")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.RouterDeps{
		Client:   client,
		DB:       db,
		Redis:    rdb,
		Notifier: notifier,
		JWT:      cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
		Logger:   log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
