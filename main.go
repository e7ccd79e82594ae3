package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeBarney88/golf-club-api/audit"
	"github.com/MikeBarney88/golf-club-api/config"
	"github.com/MikeBarney88/golf-club-api/database"
	"github.com/MikeBarney88/golf-club-api/handlers"
	"github.com/MikeBarney88/golf-club-api/middleware"
	"github.com/MikeBarney88/golf-club-api/monitoring"
	"github.com/MikeBarney88/golf-club-api/services"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: true,
	}))
	slog.SetDefault(logger)

	metricsCfg, err := monitoring.ConfigFromEnv()
	if err != nil {
		slog.Error("Invalid metrics configuration", "error", err)
		os.Exit(1)
	}
	metricsCfg.ServiceName = cfg.ServiceName
	if err := monitoring.Initialize(metricsCfg); err != nil {
		slog.Warn("Metrics unavailable", "error", err)
	}

	dbConfig, err := database.NewDatabaseConfig()
	if err != nil {
		slog.Error("Invalid database configuration", "error", err)
		os.Exit(1)
	}
	gormDB, err := database.ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	publisher := audit.NewPublisher(audit.Config{
		Enabled:  cfg.Audit.Enabled,
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Stream:   cfg.Audit.Stream,
	})

	memberService := services.NewMemberService(gormDB)
	tournamentService := services.NewTournamentService(gormDB)
	handler := handlers.NewHandler(memberService, tournamentService, middleware.NewAuditLogger(publisher))

	router := handlers.NewRouter(handler, gormDB, handlers.RouterConfig{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CORSMaxAge:     cfg.CORS.MaxAge,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		slog.Info("Golf club API starting", "port", cfg.Port, "database", dbConfig.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	if err := publisher.Close(); err != nil {
		slog.Error("Failed to close audit publisher", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}

	slog.Info("Server exited")
}
