package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/marketpro/backoffice/internal/adapter/driven/marketplace"
	"github.com/marketpro/backoffice/internal/adapter/driven/secretcodec"
	sqliteadapter "github.com/marketpro/backoffice/internal/adapter/driven/sqlite"
	httphandler "github.com/marketpro/backoffice/internal/adapter/driving/http"
	"github.com/marketpro/backoffice/internal/application"
	"github.com/marketpro/backoffice/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"env", cfg.Env,
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"relay_timeout", cfg.RelayTimeout,
		"token_ttl", cfg.TokenTTL,
	)
	if cfg.UsesDevSecrets() {
		slog.Warn("using development fallback secrets; set MARKETPRO_MASTER_KEY and MARKETPRO_JWT_SECRET before storing real credentials")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 4. Wire adapters.
	codec, err := secretcodec.New(cfg.MasterKey)
	if err != nil {
		return err
	}

	userStore := sqliteadapter.NewUserRepo(db)
	credentialStore := sqliteadapter.NewCredentialRepo(db, codec)
	orderStore := sqliteadapter.NewOrderRepo(db)
	productStore := sqliteadapter.NewProductRepo(db)
	financeStore := sqliteadapter.NewFinanceRepo(db)
	campaignStore := sqliteadapter.NewCampaignRepo(db)

	gateway := marketplace.NewGateway(cfg.RelayTimeout)

	// 5. Application services.
	authSvc := application.NewAuthService(userStore, cfg.JWTSecret, cfg.TokenTTL)
	financeSvc := application.NewFinanceService(financeStore)

	if cfg.HasBootstrapUser() {
		if err := authSvc.EnsureUser(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
		slog.Info("bootstrap user ensured", "username", cfg.AdminUsername)
	}

	// 6. HTTP handler.
	apiHandler := httphandler.NewHandler(httphandler.Deps{
		Relay:     application.NewRelayService(credentialStore, gateway),
		Settings:  application.NewSettingsService(credentialStore, gateway),
		Auth:      authSvc,
		Finance:   financeSvc,
		Dashboard: application.NewDashboardService(orderStore, productStore, campaignStore, financeSvc),
		Orders:    orderStore,
		Products:  productStore,
		Records:   financeStore,
		Campaigns: campaignStore,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(apiHandler, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Leaves headroom above the relay timeout for the upstream round trip.
		WriteTimeout: cfg.RelayTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("marketpro started", "listen_addr", cfg.ListenAddr)

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
