// Package main runs the campaign reconciliation service: it loads the
// chain registry from configuration, connects the backing stores, and
// serves the reconciled campaign listing over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"campaign-engine/internal/chainrpc"
	"campaign-engine/internal/config"
	"campaign-engine/internal/engine"
	"campaign-engine/internal/httpapi"
	"campaign-engine/internal/logging"
	"campaign-engine/internal/registry"
	"campaign-engine/internal/storage"
	chstore "campaign-engine/internal/storage/clickhouse"
	"campaign-engine/internal/storage/memory"
	"campaign-engine/internal/storage/migrations"
	pgstore "campaign-engine/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	chainsSpec := flag.String("chains", os.Getenv("CHAINS"), "Chain list: chainID=rpcURL|contract|family[;...] (family: eth or native)")
	nativeRate := flag.Float64("native-usd-rate", envFloat("NATIVE_USD_RATE", 0), "Native token to USD rate")
	ethRate := flag.Float64("eth-usd-rate", envFloat("ETH_USD_RATE", 0), "Ethereum-family token to USD rate")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	listenAddr := flag.String("listen-addr", envString("LISTEN_ADDR", config.DefaultListenAddr), "HTTP listen address")
	readTimeout := flag.Duration("read-timeout", config.DefaultReadTimeout, "Per-campaign on-chain read timeout")
	readConcurrency := flag.Int("read-concurrency", config.DefaultReadConcurrency, "Max parallel on-chain reads per request")

	flag.Parse()

	log, err := logging.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	chains, err := config.ParseChains(*chainsSpec)
	if err != nil {
		log.Fatal("invalid --chains", zap.Error(err))
	}
	cfg := config.Config{
		Chains:          chains,
		NativeUsdRate:   *nativeRate,
		EthereumUsdRate: *ethRate,
		ReadTimeout:     *readTimeout,
		ReadConcurrency: *readConcurrency,
		ListenAddr:      *listenAddr,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		log.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, healthCheck, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		log.Fatal("failed to create stores", zap.Error(err))
	}
	defer cleanup()

	arena := chainrpc.NewArena()
	defer arena.Close()

	eng := engine.New(engine.Options{
		Campaigns: stores.campaigns,
		Allowlist: stores.allowlist,
		Tips:      stores.tips,
		Updates:   stores.updates,
		Registry:  registry.New(cfg),
		Reader: chainrpc.NewReader(arena,
			chainrpc.WithTimeout(cfg.ReadTimeout),
			chainrpc.WithLogger(log),
		),
		ReadConcurrency: cfg.ReadConcurrency,
		Logger:          log,
	})
	defer eng.Close()

	controller := httpapi.NewController(eng, log)
	controller.HealthCheck = healthCheck

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           controller.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, initiating graceful shutdown", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
		}
		cancel()

		// Second signal forces immediate exit.
		select {
		case sig := <-sigCh:
			log.Error("received second signal, forcing immediate shutdown", zap.String("signal", sig.String()))
			os.Exit(1)
		case <-time.After(30 * time.Second):
		}
	}()

	log.Info("server listening",
		zap.String("addr", cfg.ListenAddr),
		zap.Int("chains", len(cfg.Chains)),
		zap.Bool("memoryStores", *useMemory),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}

	log.Info("shutdown complete")
}

// allStores holds all storage implementations.
type allStores struct {
	campaigns storage.CampaignStore
	allowlist storage.AllowlistStore
	tips      storage.TipStore
	updates   storage.UpdateStore
}

// createStores wires either the in-memory stores or PostgreSQL plus
// ClickHouse, applying migrations at boot. The returned health check
// pings the live backends.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(context.Context) error, func(), error) {
	if useMemory {
		stores := &allStores{
			campaigns: memory.NewCampaignStore(),
			allowlist: memory.NewAllowlistStore(),
			tips:      memory.NewTipStore(),
			updates:   memory.NewUpdateStore(),
		}
		return stores, nil, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	stores := &allStores{
		campaigns: pgstore.NewCampaignStore(pool),
		allowlist: pgstore.NewAllowlistStore(pool),
		tips:      chstore.NewTipLedgerStore(conn),
		updates:   pgstore.NewUpdateStore(pool),
	}
	healthCheck := func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return err
		}
		return conn.Ping(ctx)
	}
	cleanup := func() {
		pool.Close()
		_ = conn.Close()
	}
	return stores, healthCheck, cleanup, nil
}

// loadEnvFile loads .env into the environment without overriding
// variables that are already set.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
