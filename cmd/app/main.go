package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/booking"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/clock"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/config"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/db"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/gym"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/logger"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/metrics"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/persist"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/server"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/wallet"
)

// @title GymFlex API
// @version 1.0
// @description Wallet-funded gym session booking with signed QR check-in.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting GymFlex service")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	var (
		adapter persist.Adapter
		catalog gym.Catalog
	)

	switch cfg.Backend {
	case config.BackendPostgres:
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()
		if err := db.RunMigrations(database, "migrations"); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("Database connected, migrations completed")
		adapter = persist.NewPostgresStore(database)
		catalog = gym.NewRepository(database)

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		logger.Infof("Redis connected at %s", cfg.RedisAddr)
		adapter = persist.NewRedisStore(client)

	default:
		fileStore, err := persist.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Fatalf("Failed to open data dir: %v", err)
		}
		logger.Infof("Persisting state under %s", cfg.DataDir)
		adapter = fileStore
	}

	if catalog == nil {
		static, err := gym.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			logger.Fatalf("Failed to load gym catalog: %v", err)
		}
		catalog = static
	}

	clk := clock.Real{}

	ledger, err := wallet.NewLedger(ctx, adapter, clk, cfg.Currency)
	if err != nil {
		var integrity *wallet.IntegrityError
		if errors.As(err, &integrity) {
			// Keep serving reads; the ledger rejects mutations on its own.
			metrics.RecordIntegrityFailure()
			logger.Errorf("Ledger integrity violation, running read-only: %v", integrity)
		} else {
			logger.Fatalf("Failed to load wallet ledger: %v", err)
		}
	}
	logger.Infof("Wallet loaded, balance %d %s", ledger.Balance().BalanceCents, ledger.Balance().Currency)

	bookings, err := booking.NewStore(ctx, ledger, catalog, adapter, clk)
	if err != nil {
		logger.Fatalf("Failed to load booking store: %v", err)
	}

	srv := server.New(cfg, server.Deps{
		Ledger:   ledger,
		Bookings: bookings,
		Catalog:  catalog,
		Clock:    clk,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
