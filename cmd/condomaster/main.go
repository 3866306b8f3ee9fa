package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/condomaster/condomaster-api/internal/config"
	"github.com/condomaster/condomaster-api/internal/database"
	"github.com/condomaster/condomaster-api/internal/email"
	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/logging"
	"github.com/condomaster/condomaster-api/internal/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	gw, db, err := openGateway(cfg, logger)
	if err != nil {
		logger.Error("open database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	notifier := email.NewNotifier(newSender(cfg), cfg.EmailUser, cfg.MailLocale, logger.With("component", "email"))
	if !notifier.Enabled() {
		logger.Warn("email receipts disabled: EMAIL_USER not set")
	}

	srv := server.New(gw, notifier, server.Options{
		APIPrefix:      cfg.APIPrefix,
		LoginRateLimit: cfg.LoginRateLimit,
	}, logger)

	// Periodic cleanup of expired rate limiter entries
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			srv.RateLimiter().Cleanup()
		}
	}()

	httpServer := &http.Server{
		Addr:         net.JoinHostPort("0.0.0.0", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("CondoMaster backend online",
			"url", fmt.Sprintf("http://localhost:%s%s", cfg.Port, cfg.APIPrefix),
			"database", cfg.DatabaseDriver,
			"email", notifier.Enabled(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	notifier.Wait()
}

// openGateway builds the store gateway for the configured driver. The
// returned *sql.DB is nil for the hosted driver.
func openGateway(cfg *config.Config, logger *slog.Logger) (gateway.Gateway, *sql.DB, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err := database.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return gateway.NewSQL(db, gateway.Postgres, gateway.WithJSONColumns(database.JSONColumns)), db, nil
	case config.DriverSQLite:
		db, err := database.Open("sqlite", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return gateway.NewSQL(db, gateway.SQLite, gateway.WithJSONColumns(database.JSONColumns)), db, nil
	default:
		if !cfg.SupabaseConfigured() {
			logger.Error("missing Supabase credentials: set SUPABASE_URL and SUPABASE_KEY; every database call will fail")
		}
		return gateway.NewPostgREST(cfg.SupabaseURL, cfg.SupabaseKey), nil, nil
	}
}

func newSender(cfg *config.Config) email.Sender {
	if cfg.PostmarkToken != "" {
		return email.NewPostmarkClient(cfg.PostmarkToken)
	}
	return email.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailAppPassword)
}
