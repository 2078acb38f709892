package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/config"
	"github.com/feral-file/ff-tweet-indexer/internal/consumer"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/feed"
	"github.com/feral-file/ff-tweet-indexer/internal/lexicon"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/media"
	"github.com/feral-file/ff-tweet-indexer/internal/persister"
	"github.com/feral-file/ff-tweet-indexer/internal/producer"
	"github.com/feral-file/ff-tweet-indexer/internal/queue"
	"github.com/feral-file/ff-tweet-indexer/internal/status"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadStreamIngesterConfig(*configFile, *envPath)
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
			"service": "stream-ingester",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting stream ingester",
		zap.String("feed", cfg.Feed.Type),
		zap.Strings("languages", cfg.Ingest.Languages),
		zap.Int("consumers", cfg.Ingest.Consumers))

	// Connect to database
	db, err := store.Open(cfg.Database.Type, cfg.Database.DSN(), cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("type", cfg.Database.Type))
	}

	// Every consumer pins a connection for its whole life
	maxOpenConns := cfg.Database.MaxOpenConns
	if required := store.RequiredOpenConns(cfg.Ingest.Consumers); maxOpenConns < required {
		logger.WarnCtx(ctx, "Raising max_open_conns to fit the consumers",
			zap.Int("configured", maxOpenConns),
			zap.Int("required", required))
		maxOpenConns = required
	}
	if err := store.ConfigureConnectionPool(db, maxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewStore(db)

	// Initialize adapters
	clock := adapter.NewClock()

	var source feed.Source
	switch cfg.Feed.Type {
	case config.FeedTypeNATS:
		source = feed.NewJetStreamSource(feed.JetStreamConfig{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			ConsumerName:   cfg.NATS.ConsumerName,
			Subject:        cfg.NATS.Subject,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			AckWait:        cfg.NATS.AckWait,
			IdleTimeout:    cfg.Feed.IdleTimeout,
		}, adapter.NewNatsJetStream(), clock)
	default:
		source = feed.NewHTTPSource(feed.HTTPConfig{
			URL:         cfg.Feed.URL,
			BearerToken: cfg.Feed.BearerToken,
			IdleTimeout: cfg.Feed.IdleTimeout,
		}, adapter.NewHTTPClient(cfg.Feed.ConnectTimeout), clock)
	}

	var capturer media.Capturer
	if cfg.Media.Enabled {
		capturer, err = media.NewCapturer(media.Config{
			Storage:           cfg.Media.Storage,
			Path:              cfg.Media.Path,
			RequestsPerSecond: cfg.Media.RequestsPerSecond,
			Burst:             cfg.Media.Burst,
			MaxSize:           cfg.Media.MaxSize,
		}, adapter.NewHTTPClient(cfg.Media.HTTPTimeout), adapter.NewFileSystem())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create media capturer", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Media capture enabled", zap.String("storage", cfg.Media.Storage))
	}

	// Build the pipeline
	filter := domain.NewLanguageFilter(cfg.Ingest.Languages)
	q := queue.New(cfg.Ingest.QueueSize)

	prod := producer.New(producer.Config{
		InitialBackoff: cfg.Feed.InitialBackoff,
		MaxBackoff:     cfg.Feed.MaxBackoff,
		LogInterval:    cfg.Ingest.LogInterval,
	}, source, q, filter, clock)

	pool := consumer.NewPool(consumer.Config{
		Consumers:    cfg.Ingest.Consumers,
		CaptureMedia: cfg.Media.Enabled,
		LogInterval:  cfg.Ingest.LogInterval,
	}, dataStore, q, filter, func(conn store.Store) (persister.Persister, error) {
		interner, err := lexicon.NewInterner(conn, lexicon.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		return persister.New(conn, interner, capturer), nil
	}, clock)

	producerDone := make(chan error, 1)
	go func() {
		producerDone <- prod.Run(ctx)
	}()

	poolDone := make(chan error, 1)
	go func() {
		poolDone <- pool.Run(ctx)
	}()

	var statusServer *status.Server
	serverErr := make(chan error, 1)
	if cfg.StatusServer.Enabled {
		statusServer = status.New(status.Config{
			Debug:        cfg.Debug,
			Host:         cfg.StatusServer.Host,
			Port:         cfg.StatusServer.Port,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}, prod, pool, q)
		go func() {
			if err := statusServer.Start(); err != nil {
				serverErr <- err
			}
		}()
	}

	// Wait for interrupt signal or a pipeline failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-poolDone:
		logger.ErrorCtx(ctx, fmt.Errorf("consumer pool stopped: %w", err), zap.String("component", "consumer"))
		poolDone <- err
	case err := <-serverErr:
		logger.ErrorCtx(ctx, err, zap.String("component", "status_server"))
	}
	cancel()

	// Consumers finish the item in hand; queued items are abandoned
	if err := <-producerDone; err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "producer"))
	}
	if err := <-poolDone; err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "consumer"))
	}

	if statusServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := statusServer.Shutdown(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("component", "status_server"))
		}
	}

	counts := prod.Counts()
	totals := pool.Totals()
	logger.Info("Stream ingester stopped",
		zap.Int64("received", counts.Total),
		zap.Int64("accepted", counts.Accepted),
		zap.Int64("created", totals.Created),
		zap.Int64("duplicate", totals.Duplicate),
		zap.Int64("dropped", totals.Dropped),
		zap.Int64("failed", totals.Failed),
		zap.Int("abandoned", q.Len()))
}
