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
	"github.com/feral-file/ff-tweet-indexer/internal/lexicon"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/media"
	"github.com/feral-file/ff-tweet-indexer/internal/persister"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
	"github.com/feral-file/ff-tweet-indexer/internal/timeline"
	"github.com/feral-file/ff-tweet-indexer/internal/twitter"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	userID     = flag.Int64("user", 0, "Platform id of the user whose timeline is imported")
)

func main() {
	flag.Parse()
	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "-user is required")
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadTimelineImporterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "timeline-importer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Connect to database
	db, err := store.Open(cfg.Database.Type, cfg.Database.DSN(), cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("type", cfg.Database.Type))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewStore(db)

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
	}

	interner, err := lexicon.NewInterner(dataStore, lexicon.DefaultCacheSize)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create interner", zap.Error(err))
	}

	client := twitter.NewClient(twitter.ClientConfig{
		APIURL:            cfg.Twitter.APIURL,
		BearerToken:       cfg.Twitter.BearerToken,
		RequestsPerSecond: cfg.Twitter.RequestsPerSecond,
		Burst:             cfg.Twitter.Burst,
	}, adapter.NewHTTPClient(cfg.Twitter.HTTPTimeout))

	importer := timeline.NewImporter(timeline.Config{
		PageSize:     cfg.Twitter.PageSize,
		CaptureMedia: cfg.Media.Enabled,
	}, client, persister.New(dataStore, interner, capturer))

	result, err := importer.Import(ctx, *userID)
	if err != nil {
		fields := []zap.Field{zap.Int64("user_id", *userID)}
		if result != nil {
			fields = append(fields, zap.Int("created", result.Created), zap.Int("updated", result.Updated))
		}
		logger.ErrorCtx(ctx, err, fields...)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Timeline imported",
		zap.Int64("user_id", *userID),
		zap.Bool("user_created", result.UserCreated),
		zap.Int("pages", result.Pages),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated))
}
