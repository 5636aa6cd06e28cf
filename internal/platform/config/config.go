// Package config loads process configuration from an optional TOML file,
// overridden by environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvKeyConfigFile names the TOML file to load before applying env overrides.
const EnvKeyConfigFile = "CONFIG_FILE"

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	JWT      JWTConfig      `toml:"jwt"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	Cascade  CascadeConfig  `toml:"cascade"`
}

type ServerConfig struct {
	Addr         string `toml:"addr"`
	CORSOrigin   string `toml:"cors_origin"`
	CookieSecure bool   `toml:"cookie_secure"`
}

type DatabaseConfig struct {
	// Driver is one of mysql, postgres, sqlite.
	Driver       string        `toml:"driver"`
	User         string        `toml:"user"`
	Password     string        `toml:"password"`
	Name         string        `toml:"name"`
	Host         string        `toml:"host"`
	Port         string        `toml:"port"`
	InstanceName string        `toml:"instance_name"`
	Path         string        `toml:"path"`
	Migrate      bool          `toml:"migrate"`
	ConnTimeout  time.Duration `toml:"conn_timeout"`
}

type RedisConfig struct {
	Host     string        `toml:"host"`
	Port     string        `toml:"port"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	StatsTTL time.Duration `toml:"stats_ttl"`
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type JWTConfig struct {
	AccessSecret  string        `toml:"access_secret"`
	AccessTTL     time.Duration `toml:"access_ttl"`
	RefreshSecret string        `toml:"refresh_secret"`
	RefreshTTL    time.Duration `toml:"refresh_ttl"`
}

type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	PublicURL string `toml:"public_url"`
	UseSSL    bool   `toml:"use_ssl"`
}

// Enabled reports whether object storage is configured.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKey != ""
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type CascadeConfig struct {
	RetryInterval time.Duration `toml:"retry_interval"`
	BatchSize     int           `toml:"batch_size"`
	RatePerMinute int           `toml:"rate_per_minute"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", CORSOrigin: "*", CookieSecure: true},
		Database: DatabaseConfig{
			Driver:      "mysql",
			Host:        "localhost",
			Port:        "3306",
			Path:        "vidtube.db",
			ConnTimeout: 60 * time.Second,
		},
		Redis: RedisConfig{Port: "6379", StatsTTL: time.Minute},
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 10 * 24 * time.Hour,
		},
		Storage: StorageConfig{Bucket: "vidtube"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Cascade: CascadeConfig{RetryInterval: time.Minute, BatchSize: 50, RatePerMinute: 120},
	}
}

// Load returns defaults overlaid by the TOML file named in CONFIG_FILE (if any),
// then by environment variables.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvKeyConfigFile); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

// normalize restores defaults for values the cascade worker cannot run with.
func (c *Config) normalize() {
	def := Default().Cascade
	if c.Cascade.RetryInterval <= 0 {
		c.Cascade.RetryInterval = def.RetryInterval
	}
	if c.Cascade.BatchSize <= 0 {
		c.Cascade.BatchSize = def.BatchSize
	}
}

// LoadFile decodes the TOML file at path into cfg, keeping values it does not set.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	envString("SERVER_ADDR", &cfg.Server.Addr)
	envString("CORS_ORIGIN", &cfg.Server.CORSOrigin)
	envBool("COOKIE_SECURE", &cfg.Server.CookieSecure)

	envString("DB_DRIVER", &cfg.Database.Driver)
	envString("DB_USER", &cfg.Database.User)
	envString("DB_PASSWORD", &cfg.Database.Password)
	envString("DB_NAME", &cfg.Database.Name)
	envString("DB_HOST", &cfg.Database.Host)
	envString("DB_PORT", &cfg.Database.Port)
	envString("INSTANCE_CONNECTION_NAME", &cfg.Database.InstanceName)
	envString("DB_PATH", &cfg.Database.Path)
	envBool("RUN_MIGRATIONS", &cfg.Database.Migrate)
	envDuration("DB_CONN_TIMEOUT", &cfg.Database.ConnTimeout)

	envString("REDIS_HOST", &cfg.Redis.Host)
	envString("REDIS_PORT", &cfg.Redis.Port)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	envInt("REDIS_DB", &cfg.Redis.DB)
	envDuration("STATS_CACHE_TTL", &cfg.Redis.StatsTTL)

	envString("ACCESS_TOKEN_SECRET", &cfg.JWT.AccessSecret)
	envDuration("ACCESS_TOKEN_EXPIRY", &cfg.JWT.AccessTTL)
	envString("REFRESH_TOKEN_SECRET", &cfg.JWT.RefreshSecret)
	envDuration("REFRESH_TOKEN_EXPIRY", &cfg.JWT.RefreshTTL)

	envString("MINIO_ENDPOINT", &cfg.Storage.Endpoint)
	envString("MINIO_ACCESS_KEY", &cfg.Storage.AccessKey)
	envString("MINIO_SECRET_KEY", &cfg.Storage.SecretKey)
	envString("MINIO_BUCKET", &cfg.Storage.Bucket)
	envString("MINIO_PUBLIC_URL", &cfg.Storage.PublicURL)
	envBool("MINIO_USE_SSL", &cfg.Storage.UseSSL)

	envString("LOG_LEVEL", &cfg.Log.Level)
	envString("LOG_FORMAT", &cfg.Log.Format)

	envDuration("CASCADE_RETRY_INTERVAL", &cfg.Cascade.RetryInterval)
	envInt("CASCADE_BATCH_SIZE", &cfg.Cascade.BatchSize)
	envInt("CASCADE_RATE_PER_MINUTE", &cfg.Cascade.RatePerMinute)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring invalid boolean env", "key", key, "value", v)
		return
	}
	*dst = b
}

func envInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer env", "key", key, "value", v)
		return
	}
	*dst = n
}

func envDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration env", "key", key, "value", v)
		return
	}
	*dst = d
}
