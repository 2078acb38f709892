package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/config"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	drop       = flag.Bool("drop", false, "Drop all tables before migrating")
	dropImages = flag.Bool("drop-images", false, "Remove the media directory")
	yes        = flag.Bool("yes", false, "Do not ask for confirmation")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadMigrateConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "migrate",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	db, err := store.Open(cfg.Database.Type, cfg.Database.DSN(), cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("type", cfg.Database.Type))
	}

	stdin := bufio.NewReader(os.Stdin)

	if *drop {
		if *yes || confirm(stdin, os.Stdout, "Drop all tables? Every stored tweet will be lost.") {
			if err := store.Drop(db); err != nil {
				logger.FatalCtx(ctx, "Failed to drop tables", zap.Error(err))
			}
			logger.InfoCtx(ctx, "Dropped all tables")
		} else {
			logger.InfoCtx(ctx, "Keeping existing tables")
		}
	}

	if *dropImages {
		if cfg.Media.Path == "" {
			logger.FatalCtx(ctx, "media.path is not configured")
		}
		if *yes || confirm(stdin, os.Stdout, fmt.Sprintf("Remove the media directory %s?", cfg.Media.Path)) {
			if err := removeMedia(adapter.NewFileSystem(), cfg.Media.Path); err != nil {
				logger.FatalCtx(ctx, "Failed to remove media directory", zap.Error(err))
			}
			logger.InfoCtx(ctx, "Removed media directory", zap.String("path", cfg.Media.Path))
		}
	}

	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate schema", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Schema is up to date", zap.String("type", cfg.Database.Type))
}

// confirm asks a [y/N] question; anything but y or yes is a no
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func removeMedia(fs adapter.FileSystem, path string) error {
	exists, err := fs.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return fs.RemoveAll(path)
}
