package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Amos-136/maditrack/internal/auth"
	"github.com/Amos-136/maditrack/internal/config"
	"github.com/Amos-136/maditrack/internal/database"
	httpapi "github.com/Amos-136/maditrack/internal/http"
	"github.com/Amos-136/maditrack/internal/logger"
	"github.com/Amos-136/maditrack/internal/repository"
	"github.com/Amos-136/maditrack/internal/service"
	"github.com/Amos-136/maditrack/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "maditrack")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	sessions := store.NewRedisKV(redisClient)

	router := httpapi.NewRouter(log)
	router.RegisterStubRoutes(httpapi.NewStubHandler())

	assistant := service.NewAssistantClient(cfg.Assistant.BaseURL, cfg.Assistant.APIKey, cfg.Assistant.Timeout, log)
	router.RegisterAssistantRoutes(httpapi.NewAssistantHandler(assistant, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for maditrack")
		} else {
			log.Warn("DB enabled but connection failed, account endpoints disabled", zap.Error(err))
		}
	}

	if db != nil {
		orgsRepo := repository.NewPostgresOrganizationsRepository(db)
		principalsRepo := repository.NewPostgresPrincipalsRepository(db)
		hasher := auth.NewArgon2Hasher(nil)

		signupService := service.NewSignupService(orgsRepo, principalsRepo, hasher, cfg.Signup.RateLimitWindow, log)
		router.RegisterSignupRoutes(httpapi.NewSignupHandler(signupService, log))

		authService := service.NewAuthService(principalsRepo, orgsRepo, hasher, sessions, cfg.Session.TTL, log)
		router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, log))

		// Backstop for failed signup compensations: sweep organizations
		// that no principal references.
		if cfg.Signup.OrphanSweepInterval > 0 {
			reconciler := service.NewOrphanReconciler(orgsRepo, cfg.Signup.OrphanSweepInterval, cfg.Signup.OrphanGracePeriod, log)
			go reconciler.Start(ctx)
		}
	}

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	if db != nil {
		_ = db.Close()
	}
}
