package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tair/spaceflight-news/pkg/database"
)

// Config holds the service configuration
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	HTTPPort       string
	GRPCPort       string
	JaegerEndpoint string

	Database database.Config
	Redis    RedisConfig
	Kafka    KafkaConfig
	Feed     FeedConfig
	Auth     AuthConfig

	CensoredKeywords []string
	PositiveKeywords []string

	// RateLimitPerMinute caps requests per client IP; 0 disables limiting
	RateLimitPerMinute int
	// TrustedProxies lists addresses or CIDR ranges whose X-Forwarded-For is honored
	TrustedProxies []string
}

// RedisConfig configures the report cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// KafkaConfig configures sync event publishing; no brokers disables it
type KafkaConfig struct {
	Brokers []string
	GroupID string
}

// FeedConfig configures the upstream articles API
type FeedConfig struct {
	BaseURL string
	Search  string
	Timeout time.Duration
}

// AuthConfig configures JWT issuing
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// IsDevelopment reports whether pretty logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func setDefaults(v *viper.Viper, serviceName string) {
	v.SetDefault("OTEL_SERVICE_NAME", serviceName)
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "8500")
	v.SetDefault("GRPC_PORT", "9500")
	v.SetDefault("JAEGER_ENDPOINT", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "newsdb")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REPORT_CACHE_TTL", "5m")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_GROUP_ID", "news-api")

	v.SetDefault("FEED_BASE_URL", "https://api.spaceflightnewsapi.net/v4/articles/")
	v.SetDefault("FEED_SEARCH", "NASA")
	v.SetDefault("FEED_TIMEOUT", "30s")

	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("RATE_LIMIT_PER_MINUTE", 100)
	v.SetDefault("TRUSTED_PROXIES", "")

	v.SetDefault("CENSORED_KEYWORDS", "spacex,musk")
	v.SetDefault("POSITIVE_KEYWORDS", "mars,moon")
}

// Load reads configuration from the environment, after loading an optional .env file
func Load(serviceName string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, serviceName)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ServiceName:    v.GetString("OTEL_SERVICE_NAME"),
		Environment:    v.GetString("ENVIRONMENT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		HTTPPort:       v.GetString("HTTP_PORT"),
		GRPCPort:       v.GetString("GRPC_PORT"),
		JaegerEndpoint: v.GetString("JAEGER_ENDPOINT"),
		Database: database.Config{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("REPORT_CACHE_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			GroupID: v.GetString("KAFKA_GROUP_ID"),
		},
		Feed: FeedConfig{
			BaseURL: v.GetString("FEED_BASE_URL"),
			Search:  v.GetString("FEED_SEARCH"),
			Timeout: v.GetDuration("FEED_TIMEOUT"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("JWT_TTL"),
		},
		CensoredKeywords: keywordList(v, "CENSORED_KEYWORDS"),
		PositiveKeywords: keywordList(v, "POSITIVE_KEYWORDS"),

		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		TrustedProxies:     splitList(v.GetString("TRUSTED_PROXIES")),
	}
}

// keywordList returns a non-nil empty list when the variable is set but blank,
// so an operator can clear a keyword list instead of falling back to the defaults.
func keywordList(v *viper.Viper, key string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return splitList(v.GetString(key))
	}
	if list := splitList(raw); list != nil {
		return list
	}
	return []string{}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
