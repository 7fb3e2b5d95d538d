package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"chainboard/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	ClickHouse    ClickHouseConfig
	Redis         RedisConfig
	Feeds         FeedsConfig
	Chat          ChatConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"chainboard"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

type ServerConfig struct {
	Port         int           `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
}

type ClickHouseConfig struct {
	Host     string `envconfig:"CLICKHOUSE_HOST" required:"true"`
	Port     int    `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	User     string `envconfig:"CLICKHOUSE_USER" default:"default"`
	Password string `envconfig:"CLICKHOUSE_PASSWORD"`
	Database string `envconfig:"CLICKHOUSE_DB" default:"bitcoin"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FeedsConfig covers the third-party JSON feeds the dashboard reads.
// Every feed has a hardcoded sample fallback, so keys are optional.
type FeedsConfig struct {
	PriceURL        string        `envconfig:"FEED_PRICE_URL" default:"https://api.coingecko.com/api/v3/simple/price"`
	FearGreedURL    string        `envconfig:"FEED_FEARGREED_URL" default:"https://api.alternative.me/fng/"`
	NewsURL         string        `envconfig:"FEED_NEWS_URL" default:"https://cryptopanic.com/api/v1/posts/"`
	NewsAPIKey      string        `envconfig:"FEED_NEWS_API_KEY"`
	DistributionURL string        `envconfig:"FEED_DISTRIBUTION_URL"`
	CacheTTL        time.Duration `envconfig:"FEED_CACHE_TTL" default:"60s"`
	RequestTimeout  time.Duration `envconfig:"FEED_REQUEST_TIMEOUT" default:"10s"`
	RatePerMinute   int           `envconfig:"FEED_RATE_PER_MINUTE" default:"30"`
}

type ChatConfig struct {
	UpstreamURL string        `envconfig:"CHAT_UPSTREAM_URL"`
	APIKey      string        `envconfig:"CHAT_API_KEY"`
	Timeout     time.Duration `envconfig:"CHAT_TIMEOUT" default:"30s"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment, loading .env first if present
func Load() (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process env config")
	}

	return &cfg, nil
}
