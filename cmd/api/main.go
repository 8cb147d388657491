package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"skillyst/internal/api"
	"skillyst/internal/config"
	"skillyst/internal/export"
	"skillyst/internal/metrics"
	"skillyst/internal/notify"
	"skillyst/internal/paginate"
	"skillyst/internal/raster"
	"skillyst/internal/session"
	"skillyst/internal/storage"
	"skillyst/internal/templates"
)

const sweepInterval = time.Minute

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}

	rule := paginate.StopRuleTrimmed
	if cfg.Export.LegacyPages {
		rule = paginate.StopRuleLegacy
	}

	var broker notify.Broker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("close redis client failed", slog.Any("error", err))
			}
		}()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("ping redis: %v", err)
		}
		broker = notify.NewRedisBroker(redisClient)
		logger.Info("notifications via redis", slog.String("redis_addr", cfg.Redis.Addr()))
	} else {
		broker = notify.NewMemoryBroker()
		logger.Info("notifications in process")
	}

	var (
		links     export.Destination
		storeOpts []session.Option
	)
	if cfg.MinIO.Enabled {
		storageClient, err := storage.NewClient(context.Background(), cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		dest := storage.NewDestination(storageClient, cfg.MinIO.PresignTTL)
		links = dest
		storeOpts = append(storeOpts, session.WithEvictHook(func(id string) {
			go purgeExports(logger, dest, id)
		}))
		logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))
	}

	sessions := session.NewStore(cfg.Session.TTL, storeOpts...)
	go sweepSessions(logger, sessions)

	pipeline := export.NewPipeline(export.Options{
		Logger:    logger,
		Templates: registry,
		Rasterizer: raster.NewRodRasterizer(logger, raster.RodOptions{
			Bin:       cfg.Browser.Bin,
			Headless:  cfg.Browser.Headless,
			NoSandbox: cfg.Browser.NoSandbox,
			Timeout:   cfg.Browser.Timeout,
		}),
		Paginator: paginate.New(rule),
		Notifier:  broker,
		Metrics:   metrics.ExportRecorder{},
	})

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.Dependencies{
		Logger:         logger,
		Sessions:       sessions,
		Templates:      registry,
		Pipeline:       pipeline,
		Subscriber:     broker,
		Links:          links,
		AllowedOrigins: cfg.API.AllowedOrigins,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("addr", address), slog.String("page_rule", rule.String()))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

func sweepSessions(logger *slog.Logger, sessions *session.Store) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for now := range ticker.C {
		if removed := sessions.Sweep(now); len(removed) > 0 {
			logger.Info("expired sessions removed", slog.Int("count", len(removed)))
		}
	}
}

func purgeExports(logger *slog.Logger, dest *storage.Destination, sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := dest.Purge(ctx, sessionID); err != nil {
		logger.Warn("purge session exports failed", slog.String("session_id", sessionID), slog.Any("error", err))
	}
}
