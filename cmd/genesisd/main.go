package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/genesis-ledger/internal/adapter"
	"github.com/feral-file/genesis-ledger/internal/api/middleware"
	"github.com/feral-file/genesis-ledger/internal/api/server"
	"github.com/feral-file/genesis-ledger/internal/config"
	"github.com/feral-file/genesis-ledger/internal/events"
	"github.com/feral-file/genesis-ledger/internal/genesis"
	"github.com/feral-file/genesis-ledger/internal/logger"
	"github.com/feral-file/genesis-ledger/internal/providers/jetstream"
	"github.com/feral-file/genesis-ledger/internal/recorder"
	"github.com/feral-file/genesis-ledger/internal/registry"
	"github.com/feral-file/genesis-ledger/internal/replay"
	"github.com/feral-file/genesis-ledger/internal/sale"
	"github.com/feral-file/genesis-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadLedgerdConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "genesisd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting GENESIS ledger daemon")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate journal schema", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()

	// Load Stage1 mint rights
	mintRights, err := loadMintRights(ctx, cfg.Genesis.Sale.MintRightsPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load mint rights", zap.Error(err), zap.String("path", cfg.Genesis.Sale.MintRightsPath))
	}

	// Build the contract behind a replay clock so journal entries re-execute
	// under their original timestamps
	replayClock := replay.NewClock(adapter.NewClock())

	tiers := make([]genesis.Tier, len(cfg.Genesis.Tiers))
	for i, t := range cfg.Genesis.Tiers {
		tiers[i] = genesis.Tier{MinLevel: t.MinLevel, URI: t.URI}
	}

	contract, err := genesis.New(genesis.Config{
		Owner:     cfg.Genesis.OwnerAddress(),
		MaxSupply: cfg.Genesis.MaxSupply,
		Sale: sale.Config{
			Stage1Window:  cfg.Genesis.Sale.Stage1Window,
			Stage2Window:  cfg.Genesis.Sale.Stage2Window,
			StageCooldown: cfg.Genesis.Sale.StageCooldown,
			Stage1Cost:    config.CostWei(cfg.Genesis.Sale.Stage1Cost),
			Stage2Cost:    config.CostWei(cfg.Genesis.Sale.Stage2Cost),
			Stage3Cost:    config.CostWei(cfg.Genesis.Sale.Stage3Cost),
			MintRights:    mintRights,
			AllowlistRoot: cfg.Genesis.Sale.AllowlistRootHash(),
		},
		LevelUnit:         cfg.Genesis.LevelUnit,
		PlaceholderURI:    cfg.Genesis.PlaceholderURI,
		TierURIs:          tiers,
		RoyaltyRecipient:  cfg.Genesis.RoyaltyRecipientAddress(),
		RoyaltyPercentage: cfg.Genesis.RoyaltyPercentage,
	}, replayClock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to construct contract", zap.Error(err))
	}

	// Rebuild state from the journal before attaching the live sink
	engine := replay.NewEngine(dataStore, contract, replayClock, jsonAdapter, jcsAdapter)
	applied, err := engine.Run(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Journal replay failed", zap.Error(err), zap.Int("applied", applied))
	}
	logger.InfoCtx(ctx, "State rebuilt from journal",
		zap.Int("entries", applied),
		zap.Uint64("total_supply", contract.TotalSupply()))

	// Optional NATS event publishing
	var dispatcher *events.Dispatcher
	if cfg.NATS.Enabled {
		publisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		dispatcher = events.NewDispatcher(publisher, events.Config{
			PoolSize:       cfg.Dispatcher.PoolSize,
			QueueSize:      cfg.Dispatcher.QueueSize,
			MaxElapsedTime: cfg.Dispatcher.MaxElapsedTime,
		})
		defer dispatcher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL), zap.String("stream", cfg.NATS.StreamName))
	}

	// Attach the commit sink: every committed operation is journaled and its
	// events dispatched
	sink := recorder.New(dataStore, dispatcher, jsonAdapter, jcsAdapter, 0)
	contract.SetCommitSink(sink)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, contract)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("GENESIS ledger daemon stopped")
}

// loadMintRights loads the Stage1 allotment file; an empty path means no
// address holds mint rights.
func loadMintRights(ctx context.Context, path string) (map[common.Address]uint64, error) {
	if path == "" {
		logger.WarnCtx(ctx, "Mint rights path not configured, Stage1 will reject all minters")
		return map[common.Address]uint64{}, nil
	}
	rights, err := registry.LoadMintRights(path)
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "Loaded mint rights", zap.String("path", path), zap.Int("addresses", len(rights)))
	return rights, nil
}
