package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/events"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/spf13/viper"
)

// ConfigFileEnv names an explicit config file. Without it storefront.yaml
// is read from the working directory when present.
const ConfigFileEnv = "STOREFRONT_CONFIG"

type Config struct {
	Env       string // dev, staging, prod (default: dev)
	LogLevel  string // debug, info, warn, error (default: info)
	LogFormat string // json, text (default: json)
	Port      int    // default: 8080

	DatabaseFile string // default: storefront.db
	PepperFile   string // default: pepper

	JWTSecret string        // required outside dev
	TokenTTL  time.Duration // default: 30 days

	// EphemeralSecret is set when JWTSecret was generated at startup.
	// Tokens will not survive a restart.
	EphemeralSecret bool

	BootstrapToken string // bootstrap endpoint is disabled when empty

	ShutdownGracePeriod  time.Duration // default: 10s
	HousekeepingInterval time.Duration // default: 1h

	RateLimits httpx.RateLimits

	RedisURL        string        // product cache is disabled when empty
	ProductCacheTTL time.Duration // default: 15m

	KafkaBrokers []string // catalog events are disabled when empty
	KafkaTopic   string   // default: storefront.catalog
}

// envBindings maps config keys to their environment variables. Keys are
// also the names used in the config file.
var envBindings = map[string]string{
	"env":                   "ENV",
	"log_level":             "LOG_LEVEL",
	"log_format":            "LOG_FORMAT",
	"port":                  "PORT",
	"database_file":         "STOREFRONT_DATABASE_FILE",
	"pepper_file":           "STOREFRONT_PEPPER_FILE",
	"jwt_secret":            "JWT_SECRET",
	"token_ttl":             "STOREFRONT_TOKEN_TTL",
	"bootstrap_token":       "BOOTSTRAP_TOKEN",
	"shutdown_grace_period": "SHUTDOWN_GRACE_PERIOD",
	"housekeeping_interval": "HOUSEKEEPING_INTERVAL",
	"redis_url":             "REDIS_URL",
	"product_cache_ttl":     "PRODUCT_CACHE_TTL",
	"kafka_brokers":         "KAFKA_BROKERS",
	"kafka_topic":           "KAFKA_CATALOG_TOPIC",
}

var rateLimitProfiles = []string{"strict", "moderate", "public"}

// LoadConfig reads configuration from the environment and an optional YAML
// file. Environment variables win over the file.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("port", 8080)
	v.SetDefault("database_file", "storefront.db")
	v.SetDefault("pepper_file", "pepper")
	v.SetDefault("token_ttl", jwtx.DefaultTokenTTL)
	v.SetDefault("shutdown_grace_period", 10*time.Second)
	v.SetDefault("housekeeping_interval", time.Hour)
	v.SetDefault("product_cache_ttl", 15*time.Minute)
	v.SetDefault("kafka_topic", events.DefaultTopic)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	defaults := httpx.DefaultRateLimits()
	for _, name := range rateLimitProfiles {
		d := profile(&defaults, name)
		prefix := "ratelimit." + name + "."
		env := "RATELIMIT_" + strings.ToUpper(name) + "_"

		v.SetDefault(prefix+"requests", d.RequestsPerWindow)
		v.SetDefault(prefix+"window", d.Window)
		v.SetDefault(prefix+"burst", d.Burst)
		_ = v.BindEnv(prefix+"requests", env+"REQUESTS")
		_ = v.BindEnv(prefix+"window", env+"WINDOW")
		_ = v.BindEnv(prefix+"burst", env+"BURST")
	}

	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:                  v.GetString("env"),
		LogLevel:             v.GetString("log_level"),
		LogFormat:            v.GetString("log_format"),
		Port:                 v.GetInt("port"),
		DatabaseFile:         v.GetString("database_file"),
		PepperFile:           v.GetString("pepper_file"),
		JWTSecret:            v.GetString("jwt_secret"),
		TokenTTL:             v.GetDuration("token_ttl"),
		BootstrapToken:       v.GetString("bootstrap_token"),
		ShutdownGracePeriod:  v.GetDuration("shutdown_grace_period"),
		HousekeepingInterval: v.GetDuration("housekeeping_interval"),
		RedisURL:             v.GetString("redis_url"),
		ProductCacheTTL:      v.GetDuration("product_cache_ttl"),
		KafkaBrokers:         splitList(v.GetString("kafka_brokers")),
		KafkaTopic:           v.GetString("kafka_topic"),
	}

	for _, name := range rateLimitProfiles {
		prefix := "ratelimit." + name + "."
		*profile(&cfg.RateLimits, name) = httpx.RateLimitConfig{
			RequestsPerWindow: v.GetInt(prefix + "requests"),
			Window:            v.GetDuration(prefix + "window"),
			Burst:             v.GetInt(prefix + "burst"),
		}
	}

	if cfg.JWTSecret == "" && cfg.Env == "dev" {
		cfg.JWTSecret = cryptox.MustGenerateToken(32)
		cfg.EphemeralSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that would stop the service from
// starting correctly.
func (c Config) Validate() error {
	switch {
	case c.JWTSecret == "":
		return errors.New("config: JWT_SECRET is required outside dev")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("config: invalid port %d", c.Port)
	case c.TokenTTL < time.Second:
		return fmt.Errorf("config: token ttl %s is shorter than 1s", c.TokenTTL)
	case c.DatabaseFile == "":
		return errors.New("config: database file is required")
	}

	for _, name := range rateLimitProfiles {
		if !profile(&c.RateLimits, name).Valid() {
			return fmt.Errorf("config: rate limit profile %q needs positive requests, window and burst", name)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper) error {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil // optional
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// splitList parses "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func profile(l *httpx.RateLimits, name string) *httpx.RateLimitConfig {
	switch name {
	case "strict":
		return &l.Strict
	case "moderate":
		return &l.Moderate
	default:
		return &l.Public
	}
}
