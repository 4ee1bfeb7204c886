package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/msinoftech/getsettime/internal/api/router"
	"github.com/msinoftech/getsettime/internal/bookings"
	"github.com/msinoftech/getsettime/internal/calendarsync"
	appconfig "github.com/msinoftech/getsettime/internal/config"
	"github.com/msinoftech/getsettime/internal/eventtypes"
	"github.com/msinoftech/getsettime/internal/members"
	"github.com/msinoftech/getsettime/internal/notify"
	"github.com/msinoftech/getsettime/internal/observability/metrics"
	"github.com/msinoftech/getsettime/internal/scheduling"
	"github.com/msinoftech/getsettime/internal/settings"
	"github.com/msinoftech/getsettime/internal/workspaces"
	"github.com/msinoftech/getsettime/pkg/logging"
)

func main() {
	// Load .env if present; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting getsettime API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Redis backs workspace settings and the external calendar cache.
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err, "addr", cfg.RedisAddr)
		os.Exit(1)
	}
	settingsStore := settings.NewStore(redisClient)
	calendarStore := calendarsync.NewStore(redisClient, cfg.CalendarBusyTTL, logger)

	// Repositories: Postgres when configured, in-memory for local runs.
	var (
		workspaceRepo workspaces.Repository
		memberRepo    members.Repository
		etRepo        eventtypes.Repository
		bookingRepo   bookings.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		workspaceRepo = workspaces.NewPostgresRepository(pool)
		memberRepo = members.NewPostgresRepository(pool)
		etRepo = eventtypes.NewPostgresRepository(pool)
		bookingRepo = bookings.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
		workspaceRepo = workspaces.NewInMemoryRepository()
		memberRepo = members.NewInMemoryRepository()
		etRepo = eventtypes.NewInMemoryRepository()
		bookingRepo = bookings.NewInMemoryRepository()
	}

	schedulingMetrics := metrics.NewSchedulingMetrics(nil)

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	} else {
		logger.Info("sendgrid not configured, email notifications disabled")
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, logger)

	schedulingSvc := scheduling.NewService(
		settingsStore,
		etRepo,
		bookingRepo,
		calendarStore,
		memberRepo,
		schedulingMetrics,
		logger.Component("scheduling"),
	)
	bookingSvc := bookings.NewService(
		bookingRepo,
		schedulingSvc,
		eventtypes.NewDurationSource(etRepo),
		notifier,
		schedulingMetrics,
		logger.Component("bookings"),
	)

	routerCfg := &router.Config{
		Logger:              logger,
		SchedulingHandler:   scheduling.NewHandler(schedulingSvc, logger.Component("scheduling")),
		BookingsHandler:     bookings.NewHandler(bookingSvc, logger.Component("bookings")),
		EventTypesHandler:   eventtypes.NewHandler(etRepo, logger.Component("eventtypes")),
		MembersHandler:      members.NewHandler(memberRepo, logger.Component("members")),
		SettingsHandler:     settings.NewHandler(settingsStore, logger.Component("settings")),
		WorkspacesHandler:   workspaces.NewHandler(workspaceRepo, logger.Component("workspaces")),
		WorkspaceLookup:     workspaceRepo,
		SuperadminJWTSecret: cfg.SuperadminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		MetricsHandler:      promhttp.Handler(),
		WidgetRateLimit:     5,
		WidgetRateBurst:     20,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
