package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DatabaseTypePostgres = "postgres"
	DatabaseTypeSQLite   = "sqlite"

	FeedTypeHTTP = "http"
	FeedTypeNATS = "nats"

	MediaStorageBlob = "blob"
	MediaStorageFile = "file"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"` // postgres or sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"`               // sqlite database file
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// FeedConfig holds live feed configuration
type FeedConfig struct {
	Type           string        `mapstructure:"type"` // http or nats
	URL            string        `mapstructure:"url"`
	BearerToken    string        `mapstructure:"bearer_token"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	Subject        string        `mapstructure:"subject"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
}

// IngestConfig holds pipeline configuration
type IngestConfig struct {
	Languages   []string      `mapstructure:"languages"` // "all" accepts every language
	QueueSize   int           `mapstructure:"queue_size"`
	Consumers   int           `mapstructure:"consumers"`
	LogInterval time.Duration `mapstructure:"log_interval"`
}

// MediaConfig holds media capture configuration
type MediaConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Storage           string        `mapstructure:"storage"` // blob or file
	Path              string        `mapstructure:"path"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxSize           int64         `mapstructure:"max_size"`
}

// TwitterConfig holds REST API configuration
type TwitterConfig struct {
	APIURL            string        `mapstructure:"api_url"`
	BearerToken       string        `mapstructure:"bearer_token"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	PageSize          int           `mapstructure:"page_size"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
}

// StatusServerConfig holds status HTTP server configuration
type StatusServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// StreamIngesterConfig holds configuration for stream-ingester
type StreamIngesterConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Feed         FeedConfig         `mapstructure:"feed"`
	NATS         NATSConfig         `mapstructure:"nats"`
	Ingest       IngestConfig       `mapstructure:"ingest"`
	Media        MediaConfig        `mapstructure:"media"`
	StatusServer StatusServerConfig `mapstructure:"status_server"`
}

// TimelineImporterConfig holds configuration for timeline-importer
type TimelineImporterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Twitter    TwitterConfig  `mapstructure:"twitter"`
	Media      MediaConfig    `mapstructure:"media"`
}

// MigrateConfig holds configuration for migrate
type MigrateConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Media      MediaConfig    `mapstructure:"media"`
}

// LoadStreamIngesterConfig loads configuration for stream-ingester
func LoadStreamIngesterConfig(configFile string, envPath string) (*StreamIngesterConfig, error) {
	v := configureViper("stream-ingester", configFile, envPath)

	setDatabaseDefaults(v)
	setMediaDefaults(v)
	v.SetDefault("feed.type", FeedTypeHTTP)
	v.SetDefault("feed.url", "https://stream.twitter.com/1.1/statuses/sample.json")
	v.SetDefault("feed.idle_timeout", "90s")
	v.SetDefault("feed.connect_timeout", "30s")
	v.SetDefault("feed.initial_backoff", "1s")
	v.SetDefault("feed.max_backoff", "2m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "TWEETS")
	v.SetDefault("nats.consumer_name", "stream-ingester")
	v.SetDefault("nats.subject", "tweets.>")
	v.SetDefault("nats.connection_name", "stream-ingester")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("ingest.languages", []string{"all"})
	v.SetDefault("ingest.queue_size", 1000)
	v.SetDefault("ingest.consumers", 4)
	v.SetDefault("ingest.log_interval", "10s")
	v.SetDefault("status_server.enabled", false)
	v.SetDefault("status_server.host", "0.0.0.0")
	v.SetDefault("status_server.port", 8080)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg StreamIngesterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Media.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Feed.Type {
	case FeedTypeHTTP:
		if cfg.Feed.URL == "" {
			return nil, errors.New("feed.url is required")
		}
	case FeedTypeNATS:
		if cfg.NATS.URL == "" {
			return nil, errors.New("nats.url is required")
		}
	default:
		return nil, fmt.Errorf("unsupported feed.type %q", cfg.Feed.Type)
	}
	if cfg.Ingest.QueueSize <= 0 {
		return nil, errors.New("ingest.queue_size must be positive")
	}
	if cfg.Ingest.Consumers <= 0 {
		return nil, errors.New("ingest.consumers must be positive")
	}

	return &cfg, nil
}

// LoadTimelineImporterConfig loads configuration for timeline-importer
func LoadTimelineImporterConfig(configFile string, envPath string) (*TimelineImporterConfig, error) {
	v := configureViper("timeline-importer", configFile, envPath)

	setDatabaseDefaults(v)
	setMediaDefaults(v)
	v.SetDefault("twitter.api_url", "https://api.twitter.com/1.1")
	v.SetDefault("twitter.requests_per_second", 1)
	v.SetDefault("twitter.burst", 1)
	v.SetDefault("twitter.page_size", 200)
	v.SetDefault("twitter.http_timeout", "30s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg TimelineImporterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Media.Validate(); err != nil {
		return nil, err
	}
	if cfg.Twitter.BearerToken == "" {
		return nil, errors.New("twitter.bearer_token is required")
	}

	return &cfg, nil
}

// LoadMigrateConfig loads configuration for migrate
func LoadMigrateConfig(configFile string, envPath string) (*MigrateConfig, error) {
	v := configureViper("migrate", configFile, envPath)

	setDatabaseDefaults(v)
	setMediaDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg MigrateConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.type", DatabaseTypePostgres)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "tweets.db")
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setMediaDefaults(v *viper.Viper) {
	v.SetDefault("media.enabled", false)
	v.SetDefault("media.storage", MediaStorageBlob)
	v.SetDefault("media.path", "media")
	v.SetDefault("media.http_timeout", "30s")
	v.SetDefault("media.requests_per_second", 5)
	v.SetDefault("media.burst", 5)
	v.SetDefault("media.max_size", 20*1024*1024) // 20MB
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("TWEET_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.type",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.path",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Feed
		"feed.type",
		"feed.url",
		"feed.bearer_token",
		"feed.idle_timeout",
		"feed.connect_timeout",
		"feed.initial_backoff",
		"feed.max_backoff",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.subject",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		// Ingest
		"ingest.languages",
		"ingest.queue_size",
		"ingest.consumers",
		"ingest.log_interval",
		// Media
		"media.enabled",
		"media.storage",
		"media.path",
		"media.http_timeout",
		"media.requests_per_second",
		"media.burst",
		"media.max_size",
		// Twitter
		"twitter.api_url",
		"twitter.bearer_token",
		"twitter.requests_per_second",
		"twitter.burst",
		"twitter.page_size",
		"twitter.http_timeout",
		// Status server
		"status_server.enabled",
		"status_server.host",
		"status_server.port",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// Validate checks the fields required by the configured database type
func (c *DatabaseConfig) Validate() error {
	switch c.Type {
	case DatabaseTypePostgres:
		if c.Host == "" {
			return errors.New("database.host is required")
		}
		if c.DBName == "" {
			return errors.New("database.dbname is required")
		}
	case DatabaseTypeSQLite:
		if c.Path == "" {
			return errors.New("database.path is required")
		}
	default:
		return fmt.Errorf("unsupported database.type %q", c.Type)
	}
	return nil
}

// DSN returns the database connection string for the configured type
func (c *DatabaseConfig) DSN() string {
	if c.Type == DatabaseTypeSQLite {
		return SQLiteDSN(c.Path)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// SQLiteDSN returns a sqlite connection string with the pragmas the store relies on
func SQLiteDSN(path string) string {
	return path + "?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
}

// Validate checks the media storage mode
func (c *MediaConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Storage {
	case MediaStorageBlob:
	case MediaStorageFile:
		if c.Path == "" {
			return errors.New("media.path is required for file storage")
		}
	default:
		return fmt.Errorf("unsupported media.storage %q", c.Storage)
	}
	return nil
}
