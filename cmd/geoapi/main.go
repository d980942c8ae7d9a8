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

	"github.com/couchcryptid/bioregion-locator/internal/adapter/geojson"
	httpadapter "github.com/couchcryptid/bioregion-locator/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/bioregion-locator/internal/adapter/kafka"
	"github.com/couchcryptid/bioregion-locator/internal/adapter/rediscache"
	"github.com/couchcryptid/bioregion-locator/internal/adapter/zippopotam"
	"github.com/couchcryptid/bioregion-locator/internal/config"
	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/locator"
	"github.com/couchcryptid/bioregion-locator/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/joho/godotenv"
)

const redisConnectAttempts = 5

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	regions, err := geojson.Load(cfg.RegionsFile)
	if err != nil {
		logger.Error("failed to load bioregion catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("bioregion catalog loaded", "regions", len(regions), "file", cfg.RegionsFile)

	// Resolver chain: in-process LRU, then optional shared Redis, then Zippopotam.
	var zips domain.ZIPResolver = zippopotam.NewClient(cfg.ZIPAPIURL, cfg.ZIPTimeout, metrics, logger)
	var closers []func() error
	if cfg.RedisEnabled() {
		client := rediscache.Open(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		closers = append(closers, client.Close)
		cached := rediscache.NewResolver(zips, client, cfg.RedisTTL, metrics, logger)
		waitForRedis(ctx, cached, logger)
		zips = cached
		logger.Info("redis zip cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
	}
	zips = zippopotam.NewCachedResolver(zips, cfg.ZIPCacheSize, cfg.ZIPCacheTTL, metrics)
	logger.Info("zip lookups enabled", "api", cfg.ZIPAPIURL, "cache_size", cfg.ZIPCacheSize, "cache_ttl", cfg.ZIPCacheTTL)

	// Lookup events are feature-flagged via KAFKA_ENABLED.
	var publisher locator.Publisher
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		closers = append(closers, writer.Close)
		publisher = writer
		logger.Info("lookup event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaLookupTopic)
	} else {
		logger.Info("lookup event publishing disabled")
	}

	svc := locator.New(zips, regions, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Error("close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// waitForRedis pings with backoff so a Redis that starts alongside the
// service is warm before traffic arrives. Giving up only logs: lookups fall
// through to the upstream API while Redis is away.
func waitForRedis(ctx context.Context, r *rediscache.Resolver, logger *slog.Logger) {
	backoff := 200 * time.Millisecond
	for attempt := 1; attempt <= redisConnectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := r.Ping(pingCtx)
		cancel()
		if err == nil {
			return
		}
		logger.Warn("redis not reachable", "attempt", attempt, "error", err)
		if attempt == redisConnectAttempts || !retry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = retry.NextBackoff(backoff, 2*time.Second)
	}
	logger.Warn("continuing without a warm redis connection")
}
