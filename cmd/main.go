package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chainboard/internal/adapters/chat"
	"chainboard/internal/adapters/clickhouse"
	"chainboard/internal/adapters/config"
	"chainboard/internal/adapters/errors/noop"
	"chainboard/internal/adapters/errors/sentry"
	"chainboard/internal/adapters/feeds"
	"chainboard/internal/adapters/redis"
	"chainboard/internal/api"
	"chainboard/internal/api/handlers"
	"chainboard/internal/api/health"
	"chainboard/internal/metrics"
	chrepo "chainboard/internal/repository/clickhouse"
	"chainboard/internal/services/charts"
	"chainboard/internal/services/chatbot"
	"chainboard/internal/services/explorer"
	"chainboard/internal/services/overview"
	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Register Prometheus metrics
	metrics.Init()

	// Warehouse connection
	chClient, err := clickhouse.NewClient(cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to connect to ClickHouse: %v", err)
	}
	defer chClient.Close()

	// Redis cache in front of the third-party feeds
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	metricsRepo := chrepo.NewMetricsRepository(chClient.Conn())
	ledgerRepo := chrepo.NewLedgerRepository(chClient.Conn())

	// Feed adapters
	fetcher := feeds.NewFetcher(cfg.Feeds.RequestTimeout, redisClient, cfg.Feeds.CacheTTL, cfg.Feeds.RatePerMinute, log)
	priceFeed := feeds.NewPriceFeed(fetcher, cfg.Feeds.PriceURL)
	fearGreedFeed := feeds.NewFearGreedFeed(fetcher, cfg.Feeds.FearGreedURL)
	newsFeed := feeds.NewNewsFeed(fetcher, cfg.Feeds.NewsURL, cfg.Feeds.NewsAPIKey)
	distributionFeed := feeds.NewDistributionFeed(fetcher, cfg.Feeds.DistributionURL)
	chatClient := chat.NewClient(cfg.Chat.UpstreamURL, cfg.Chat.APIKey, cfg.Chat.Timeout)

	// Services
	chartsSvc := charts.New(metricsRepo, log)
	overviewSvc := overview.New(priceFeed, fearGreedFeed, newsFeed, distributionFeed, chartsSvc, log)
	explorerSvc := explorer.New(ledgerRepo, log)
	chatbotSvc := chatbot.New(chatClient, log)

	// HTTP server
	healthHandler := health.New(log, chClient.Conn(), redisClient.Client(), cfg.App.Name, cfg.App.Version)
	server := api.NewServer(api.ServerConfig{
		Port:         cfg.Server.Port,
		ServiceName:  cfg.App.Name,
		Version:      cfg.App.Version,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, api.Handlers{
		Health:   healthHandler,
		Charts:   handlers.NewChartsHandler(chartsSvc),
		Market:   handlers.NewMarketHandler(overviewSvc),
		Explorer: handlers.NewExplorerHandler(explorerSvc),
		Chat:     handlers.NewChatHandler(chatbotSvc),
	}, log)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.Info("System initialized successfully")

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("Received signal %s, shutting down...", sig)
	case err := <-serverErr:
		if err != nil {
			log.Errorf("HTTP server failed: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}

	if err := errorTracker.Flush(shutdownCtx); err != nil {
		log.Warnf("Error tracker flush failed: %v", err)
	}
	log.Info("Shutdown complete")
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}
