// Package config loads the engine configuration from a YAML file and
// environment variables via cleanenv. Priority: ENV > YAML > defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Dict   DictConfig   `yaml:"dict"`
	Cache  CacheConfig  `yaml:"cache"`
	Sandhi SandhiConfig `yaml:"sandhi"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// DictConfig locates the per-language dictionary stores.
type DictConfig struct {
	Dir string `yaml:"dir" env:"DICT_DIR" env-default:"./dictionaries"`
}

// CacheConfig tunes the two response caches.
type CacheConfig struct {
	PlainTTL     time.Duration `yaml:"plain_ttl"     env:"CACHE_PLAIN_TTL"     env-default:"5m"`
	PlainSize    int           `yaml:"plain_size"    env:"CACHE_PLAIN_SIZE"    env-default:"1000"`
	CompoundTTL  time.Duration `yaml:"compound_ttl"  env:"CACHE_COMPOUND_TTL"  env-default:"10m"`
	CompoundSize int           `yaml:"compound_size" env:"CACHE_COMPOUND_SIZE" env-default:"500"`
}

// SandhiConfig points at the external transliteration/segmentation service.
// An empty URL disables the service; the local fallback ladder still runs.
type SandhiConfig struct {
	URL     string        `yaml:"url"     env:"SANDHI_URL"`
	Timeout time.Duration `yaml:"timeout" env:"SANDHI_TIMEOUT" env-default:"5s"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  string        `yaml:"allowed_origins"  env:"SERVER_ALLOWED_ORIGINS"  env-default:"*"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	if c.Dict.Dir == "" {
		return fmt.Errorf("dict.dir must not be empty")
	}
	if c.Cache.PlainSize <= 0 {
		return fmt.Errorf("cache.plain_size must be > 0 (got %d)", c.Cache.PlainSize)
	}
	if c.Cache.CompoundSize <= 0 {
		return fmt.Errorf("cache.compound_size must be > 0 (got %d)", c.Cache.CompoundSize)
	}
	if c.Cache.PlainTTL <= 0 || c.Cache.CompoundTTL <= 0 {
		return fmt.Errorf("cache TTLs must be > 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	return nil
}
