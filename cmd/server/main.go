// @title       Cereza order desk API
// @version     1.0
// @description Client login, cart and order ledger for the Cereza shop.
// @BasePath    /
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

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/api"
	"github.com/cereza/orderdesk/internal/api/metrics"
	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
	"github.com/cereza/orderdesk/internal/core/service"
	"github.com/cereza/orderdesk/internal/core/token"
	"github.com/cereza/orderdesk/internal/infrastructure/config"
	"github.com/cereza/orderdesk/internal/infrastructure/db/mongo"
	"github.com/cereza/orderdesk/internal/infrastructure/db/redis"
	"github.com/cereza/orderdesk/internal/infrastructure/http/handlers"
	"github.com/cereza/orderdesk/internal/infrastructure/notify"
	"github.com/cereza/orderdesk/internal/infrastructure/store/csvfile"
	"github.com/cereza/orderdesk/internal/infrastructure/store/memory"
	"github.com/cereza/orderdesk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		// Configuration errors happen before the logger is built from it.
		if !logger.Initialized() {
			logger.Init(logger.Options{Output: os.Stderr, Service: "orderdesk"})
		}
		log := logger.Get()
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "orderdesk",
	})

	checks := map[string]handlers.Check{}
	var cleanups []func(context.Context)
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i](closeCtx)
		}
	}()

	// --- Stores ---
	var (
		ledger   ports.OrderLedger
		registry ports.ClientRegistry
	)
	switch cfg.LedgerBackend {
	case config.LedgerMongo:
		store, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}, log)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(ctx context.Context) { _ = store.Close(ctx) })
		checks["mongodb"] = store.Ping
		ledger, registry = store.Ledger(), store.Registry()
	default:
		ledger = csvfile.NewLedger(cfg.DataDir, log)
		registry = csvfile.NewRegistry(cfg.DataDir, log)
		checks["data_dir"] = handlers.DataDirCheck(cfg.DataDir)
	}

	var visitors ports.VisitorStore
	switch cfg.VisitorStore {
	case config.VisitorsRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(context.Context) { _ = rdb.Close() })
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		visitors = redis.NewVisitorStore(rdb, cfg.VisitorTTL)
	default:
		visitors = memory.NewVisitorStore(cfg.VisitorTTL)
	}

	// --- Token codec ---
	var codec ports.TokenCodec = token.PlainCodec{}
	if cfg.Token.SigningKey != "" {
		codec = token.NewSignedCodec(cfg.Token.SigningKey, cfg.Token.TTL)
		log.Info().Msg("signed identity tokens enabled")
	}

	// --- Notifications ---
	notifier := newNotifier(ctx, cfg, log, &cleanups)

	// --- Services ---
	creds := service.AdminCredentials{
		Key:          domain.AdminKey{Name: cfg.Admin.KeyName, Contact: cfg.Admin.KeyContact},
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}
	e := api.NewRouter(api.Dependencies{
		Sessions:  service.NewSessionLoader(codec, visitors, log),
		Login:     service.NewLoginService(metrics.CountingRegistry{ClientRegistry: registry}, codec, creds, log),
		Orders:    service.NewOrderService(ledger, notifier, log),
		Dashboard: service.NewDashboardService(ledger, registry, log),
		Checks:    checks,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("ledger", cfg.LedgerBackend).
			Str("visitors", cfg.VisitorStore).
			Msg("order desk listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// newNotifier returns the async SMTP dispatcher, or a no-op when no relay is configured.
func newNotifier(ctx context.Context, cfg *config.Config, log zerolog.Logger, cleanups *[]func(context.Context)) ports.Notifier {
	smtpCfg := notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		To:       cfg.Notify.To,
	}
	if !smtpCfg.Enabled() {
		log.Info().Msg("order notifications disabled, SMTP_USER or NOTIFY_TO not set")
		return notify.Noop{Log: log}
	}

	workerCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	d := notify.NewDispatcher(cfg.Notify.Workers, notify.NewSMTPNotifier(smtpCfg), metrics.NotifyRecorder{}, log)
	d.Start(workerCtx)
	*cleanups = append(*cleanups, func(context.Context) {
		stop()
		d.Wait()
	})
	return d
}
