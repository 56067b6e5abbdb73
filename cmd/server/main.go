package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thanhnp/tx-explorer/internal/api"
	"github.com/thanhnp/tx-explorer/internal/api/handlers"
	"github.com/thanhnp/tx-explorer/internal/config"
	"github.com/thanhnp/tx-explorer/internal/explorerapi"
	"github.com/thanhnp/tx-explorer/internal/page"
	"github.com/thanhnp/tx-explorer/internal/query"
	"github.com/thanhnp/tx-explorer/internal/render"
	"github.com/thanhnp/tx-explorer/internal/storage"
	"github.com/thanhnp/tx-explorer/pkg/logger"
)

// janitorInterval is how often expired pebble entries are purged
const janitorInterval = time.Minute

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("server stopped with error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger.Info("starting transaction page server",
		"upstream", cfg.Upstream.BaseURL,
		"cache_backend", cfg.Cache.Backend,
		"suave", cfg.Features.Suave.Enabled,
	)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	upstream, err := explorerapi.NewClient(&cfg.Upstream)
	if err != nil {
		return fmt.Errorf("failed to create explorer client: %w", err)
	}

	if cfg.Upstream.CheckVersion {
		checkCtx, checkCancel := context.WithTimeout(ctx, cfg.Upstream.Timeout)
		ver, err := upstream.CheckBackendVersion(checkCtx)
		checkCancel()
		if err != nil {
			return fmt.Errorf("backend version check failed: %w", err)
		}
		logger.Info("connected to explorer backend", "version", ver.String())
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := query.NewClient(upstream, store, query.Config{
		StaleTime:    cfg.Cache.StaleTime,
		TTL:          cfg.Cache.TTL,
		RetryMax:     cfg.Upstream.RetryMax,
		RetryDelay:   cfg.Upstream.RetryDelay,
		FetchTimeout: cfg.Upstream.Timeout,
	})

	renderer, err := render.New()
	if err != nil {
		return err
	}
	builder := page.NewBuilder(client, page.SettingsFromConfig(cfg))
	router := api.NewRouter(cfg.Server.Mode, handlers.NewPageHandler(builder, renderer, cfg.Render.StreamTimeout), renderer)

	// Create HTTP server. Streams stay open up to the stream timeout.
	addr := cfg.ServerAddr()
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Engine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Render.StreamTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	// Cancel context to stop the janitor
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", err)
	}

	logger.Info("server stopped")
	return nil
}

// openStore builds the configured query cache and returns its cleanup
func openStore(ctx context.Context, cfg *config.Config) (query.Store, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		rdb, err := storage.NewRedisConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis query cache", "addr", cfg.RedisAddr())
		return storage.NewRedisStore(rdb, cfg.Redis.KeyPrefix), func() {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close redis connection", err)
			}
		}, nil

	case config.CacheBackendPebble:
		logger.Info("opening pebble query cache", "path", cfg.Pebble.Path)
		db, err := storage.NewPebbleDB(cfg.Pebble.Path, cfg.Pebble.CacheSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open pebble database: %w", err)
		}
		return pebbleStore(ctx, db), closePebble(db), nil

	default:
		db, err := storage.NewMemPebbleDB()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using in-memory query cache")
		return pebbleStore(ctx, db), closePebble(db), nil
	}
}

func pebbleStore(ctx context.Context, db *storage.PebbleDB) *storage.PebbleStore {
	store := storage.NewPebbleStore(db)
	go store.RunJanitor(ctx, janitorInterval)
	return store
}

func closePebble(db *storage.PebbleDB) func() {
	return func() {
		if err := db.Sync(); err != nil {
			logger.Error("failed to flush pebble database", err)
		}
		if err := db.Close(); err != nil {
			logger.Error("failed to close pebble database", err)
		}
	}
}
