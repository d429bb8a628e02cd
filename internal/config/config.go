// Package config loads CLI settings from defaults, an optional config file,
// SPORTRADAR_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sternrassler/sportradar-client/pkg/client"
	"github.com/Sternrassler/sportradar-client/pkg/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. SPORTRADAR_API_KEY.
const EnvPrefix = "SPORTRADAR"

// Config is the complete CLI configuration.
type Config struct {
	APIKey       string        `mapstructure:"api_key"`
	Product      string        `mapstructure:"product"`
	AccessLevel  string        `mapstructure:"access_level"`
	Version      string        `mapstructure:"version"`
	Language     string        `mapstructure:"language"`
	Format       string        `mapstructure:"format"`
	Scheme       string        `mapstructure:"scheme"`
	Host         string        `mapstructure:"host"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
	Verbose      bool          `mapstructure:"verbose"`

	Log     LogConfig     `mapstructure:"log"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig holds the Redis connection used by the payload cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls caching of aggregated payloads.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MetricsConfig controls the Prometheus endpoint served during a run.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"api-key":       "api_key",
	"product":       "product",
	"access-level":  "access_level",
	"api-version":   "version",
	"language":      "language",
	"timeout":       "timeout",
	"request-delay": "request_delay",
	"verbose":       "verbose",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"redis-addr":    "redis.addr",
	"cache-ttl":     "cache.ttl",
	"metrics-addr":  "metrics.addr",
}

// Load reads the configuration. configPath may be empty, in which case
// config.yaml is looked up in the working directory and
// $HOME/.config/sportradar; a missing file is not an error. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flagName, key := range flagKeys {
			if flag := flags.Lookup(flagName); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flagName, err)
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sportradar"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so that AutomaticEnv picks it up during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("product", "soccer-extended")
	v.SetDefault("access_level", client.DefaultAccessLevel)
	v.SetDefault("version", client.DefaultVersion)
	v.SetDefault("language", client.DefaultLanguage)
	v.SetDefault("format", client.DefaultFormat)
	v.SetDefault("scheme", client.DefaultScheme)
	v.SetDefault("host", client.DefaultHost)
	v.SetDefault("timeout", client.DefaultTimeout)
	v.SetDefault("request_delay", client.DefaultRequestDelay)
	v.SetDefault("verbose", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.ttl", 30*time.Minute)

	v.SetDefault("metrics.addr", "")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ClientConfig().Validate(); err != nil {
		return err
	}
	if err := logging.ValidateLevel(c.Log.Level); err != nil {
		return err
	}
	if err := logging.ValidateFormat(c.Log.Format); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0 (got %s)", c.Cache.TTL)
	}
	return nil
}

// ClientConfig returns the request issuer configuration.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		APIKey:       c.APIKey,
		Product:      c.Product,
		AccessLevel:  c.AccessLevel,
		Version:      c.Version,
		Language:     c.Language,
		Format:       c.Format,
		Scheme:       c.Scheme,
		Host:         c.Host,
		Timeout:      c.Timeout,
		RequestDelay: c.RequestDelay,
		Verbose:      c.Verbose,
	}
}

// LoggingConfig returns the logger configuration. Output is left to the caller.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:   logging.LogLevel(c.Log.Level),
		Format:  c.Log.Format,
		Verbose: c.Verbose,
	}
}

// CacheEnabled reports whether aggregated payloads should be cached.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != "" && c.Cache.TTL > 0
}
