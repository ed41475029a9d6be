package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/openboard/board-api/config"
	"github.com/openboard/board-api/internal/email"
	"github.com/openboard/board-api/internal/handler"
	applicationHandler "github.com/openboard/board-api/internal/handler/application"
	businessHandler "github.com/openboard/board-api/internal/handler/business"
	jobHandler "github.com/openboard/board-api/internal/handler/job"
	notificationHandler "github.com/openboard/board-api/internal/handler/notification"
	preferenceHandler "github.com/openboard/board-api/internal/handler/preference"
	"github.com/openboard/board-api/internal/middleware"
	"github.com/openboard/board-api/internal/repository/postgres"
	"github.com/openboard/board-api/internal/router"
	applicationService "github.com/openboard/board-api/internal/service/application"
	businessService "github.com/openboard/board-api/internal/service/business"
	jobService "github.com/openboard/board-api/internal/service/job"
	"github.com/openboard/board-api/internal/service/notifier"
	"github.com/openboard/board-api/pkg/auth"
	"github.com/openboard/board-api/pkg/logger"
	"github.com/openboard/board-api/pkg/messaging"
	redisbroker "github.com/openboard/board-api/pkg/messaging/redis"
	"github.com/openboard/board-api/pkg/metrics"
)

func main() {
	appLogger := logger.NewLogger(nil)
	log.Logger = *appLogger.Zerolog()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	businessRepo := postgres.NewBusinessRepository(base)
	jobRepo := postgres.NewJobRepository(base)
	applicationRepo := postgres.NewApplicationRepository(base)
	typeRepo := postgres.NewNotificationTypeRepository(base)
	templateRepo := postgres.NewNotificationTemplateRepository(base)
	preferenceRepo := postgres.NewNotificationPreferenceRepository(base)
	logRepo := postgres.NewNotificationLogRepository(base)

	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email sender")
	}

	// The event broker is optional; dispatch works without it.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &log.Logger)
		if err != nil {
			log.Warn().Err(err).Msg("event broker unavailable, continuing without it")
			broker = nil
		} else {
			defer broker.Close()
		}
	}

	appMetrics := metrics.NewMetrics("board_api", "notifier")

	notifierSvc := notifier.NewService(notifier.Deps{
		Types:       typeRepo,
		Templates:   templateRepo,
		Preferences: preferenceRepo,
		Users:       userRepo,
		Logs:        logRepo,
		Sender:      sender,
		Broker:      broker,
		Metrics:     appMetrics,
	}, notifier.Options{
		ReplyTo:  cfg.Email.ReplyTo,
		CacheTTL: cfg.Notifier.CacheTTL,
	})
	trigger := notifier.NewTrigger(notifierSvc, cfg.Notifier.Timeout)

	businessSvc := businessService.NewService(businessRepo, userRepo, trigger)
	jobSvc := jobService.NewService(jobRepo, businessRepo, trigger)
	applicationSvc := applicationService.NewService(applicationRepo, jobRepo, businessRepo, userRepo, trigger)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	var rateLimit rate.Limit
	if cfg.RateLimit.Enabled {
		rateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}

	metricsPath := ""
	if cfg.Monitoring.PrometheusEnabled {
		metricsPath = cfg.Monitoring.MetricsPath
	}

	r := router.NewRouter(
		authMiddleware,
		handler.NewHandler(db),
		notificationHandler.NewHandler(notifierSvc),
		preferenceHandler.NewHandler(notifierSvc),
		businessHandler.NewHandler(businessSvc),
		jobHandler.NewHandler(jobSvc),
		applicationHandler.NewHandler(applicationSvc),
		router.Config{
			RateLimit:     rateLimit,
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    corsConfig(cfg),
			MetricsPath:   metricsPath,
			MetricsPrefix: "board_api",
			Timeout:       cfg.Server.WriteTimeout,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	}
	if len(cfg.Security.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.Security.AllowedMethods
	}
	if len(cfg.Security.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.Security.AllowedHeaders
	}
	return corsCfg
}
