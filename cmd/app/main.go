package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/sokolovart/org-team-manager/internal/audit"
	"github.com/sokolovart/org-team-manager/internal/config"
	dirpostgres "github.com/sokolovart/org-team-manager/internal/directory/postgres"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/create"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/get"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/members"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/owner"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/remove"
	"github.com/sokolovart/org-team-manager/internal/httpserver/handlers/teams/update"
	"github.com/sokolovart/org-team-manager/internal/httpserver/middlewares"
	"github.com/sokolovart/org-team-manager/internal/repository/postgres"
	"github.com/sokolovart/org-team-manager/internal/usecase/team"
	"github.com/sokolovart/org-team-manager/internal/validator"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.Load()

	log := setupLogger(cfg.Env)

	log.Info("starting application", slog.String("env", cfg.Env))

	storage, err := postgres.New(cfg.PostgresConfig)
	if err != nil {
		slog.Error("failed to initialize storage",
			slog.String("env", cfg.Env),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	dir := dirpostgres.New(storage.DB())

	sink := setupAuditSink(cfg, log)

	teamValidator := validator.NewTeamValidator(dir, storage)
	membershipValidator := validator.NewMembershipValidator(dir, storage)
	teamService := team.New(log, storage, teamValidator, membershipValidator, sink)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(middlewares.ActorAuthMiddleware(dir))

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", create.New(log, teamService))
		r.Get("/{teamID}", get.New(log, teamService))
		r.Patch("/{teamID}", update.New(log, teamService))
		r.Delete("/{teamID}", remove.New(log, teamService))

		r.Post("/{teamID}/members", members.Add(log, teamService))
		r.Put("/{teamID}/members", members.Replace(log, teamService))
		r.Delete("/{teamID}/members/{userID}", members.Remove(log, teamService))

		r.Post("/{teamID}/owner", owner.New(log, teamService))
	})

	addr := cfg.HTTPServerConfig.Host + ":" + strconv.Itoa(cfg.HTTPServerConfig.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTPServerConfig.Timeout,
		WriteTimeout:      cfg.HTTPServerConfig.Timeout,
		IdleTimeout:       cfg.HTTPServerConfig.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	gracefulShutdown(context.Background(), srv, log)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupAuditSink(cfg *config.Config, log *slog.Logger) audit.Sink {
	switch cfg.AuditConfig.Sink {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		return audit.NewRedisSink(client, cfg.AuditConfig.Stream)
	default:
		return audit.NewLogSink(log)
	}
}

func gracefulShutdown(ctx context.Context, srv *http.Server, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.Any("err", err))
		return
	}

	log.Info("server exited gracefully")
}
