package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/utensils-admin/internal/auth"
	"github.com/01moynul/utensils-admin/internal/cache"
	"github.com/01moynul/utensils-admin/internal/config"
	"github.com/01moynul/utensils-admin/internal/database"
	"github.com/01moynul/utensils-admin/internal/events"
	"github.com/01moynul/utensils-admin/internal/handlers"
	"github.com/01moynul/utensils-admin/internal/logger"
	"github.com/01moynul/utensils-admin/internal/routes"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. --- Configuration & Logging ---
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.DefaultConfig()).Fatal("invalid configuration", "error", err)
	}

	log := logger.New(logger.Config{
		Level:        logger.LogLevel(cfg.Log.Level),
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: true,
		Component:    "utensils-admin",
	})
	defer log.Close()
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Database ---
	db, err := database.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()
	log.Info("database connection pool established")

	app := &handlers.Handlers{
		DB:        db,
		Log:       log,
		Uploads:   cfg.Uploads,
		Analytics: cfg.Analytics,

		AdminEmails: cfg.Auth.AdminEmails,
	}

	// 2. --- Optional services ---
	if cfg.Auth.JWTSecret != "" {
		app.Tokens = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	} else {
		log.Warn("JWT_SECRET not set; login is disabled")
	}

	if cfg.Cache.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.Cache.RedisAddr)
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable; analytics cache disabled", "addr", cfg.Cache.RedisAddr, "error", err)
		} else {
			app.Cache = cache.NewRedis(rdb, cfg.Cache.TTL)
			log.Info("analytics cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
		}
		cancel()
	}

	if len(cfg.Events.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.Events.KafkaBrokers, cfg.Events.OrderTopic, 256, log)
		producer.Start()
		defer func() {
			producer.Close()
			producer.WaitClosed()
		}()
		app.Events = producer
		log.Info("order events enabled", "brokers", cfg.Events.KafkaBrokers, "topic", cfg.Events.OrderTopic)
	}

	// 3. --- Router & Server ---
	router := routes.SetupRouter(app, routes.Options{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		AuthRequired:  cfg.Auth.Required,
		UploadDir:     cfg.Uploads.Dir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting utensils admin API", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	// 4. --- Graceful shutdown ---
	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
