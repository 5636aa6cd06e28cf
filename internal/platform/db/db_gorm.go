package db

import (
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "vidtube_backend/internal/feature/auth/domain/entity"
	cascadeentity "vidtube_backend/internal/feature/cascade/domain/entity"
	commententity "vidtube_backend/internal/feature/comment/domain/entity"
	likeentity "vidtube_backend/internal/feature/like/domain/entity"
	playlistentity "vidtube_backend/internal/feature/playlist/domain/entity"
	subscriptionentity "vidtube_backend/internal/feature/subscription/domain/entity"
	tweetentity "vidtube_backend/internal/feature/tweet/domain/entity"
	videoentity "vidtube_backend/internal/feature/video/domain/entity"
	"vidtube_backend/internal/platform/config"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	retryInterval = 3 * time.Second
)

// Config holds the connection parameters for a relational store.
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string
	Path         string
}

// ConfigFrom converts the process configuration into a connection Config.
func ConfigFrom(c config.DatabaseConfig) Config {
	return Config{
		Driver:       c.Driver,
		User:         c.User,
		Password:     c.Password,
		Name:         c.Name,
		Host:         c.Host,
		Port:         c.Port,
		InstanceName: c.InstanceName,
		Path:         c.Path,
	}
}

// BuildDSN returns the MySQL DSN. A Cloud SQL instance name takes precedence over host/port.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// BuildPostgresDSN returns a key/value DSN understood by pgx.
func BuildPostgresDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the opener and DSN for the configured driver.
func OpenerFor(cfg Config) (Opener, string, error) {
	gcfg := &gorm.Config{TranslateError: true}
	switch cfg.Driver {
	case "", DriverMySQL:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(gmysql.Open(dsn), gcfg) }, BuildDSN(cfg), nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, BuildPostgresDSN(cfg), nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, cfg.Path, nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects using cfg and runs migrations when migrate is set.
func Open(cfg Config, timeout time.Duration, migrate bool) (*gorm.DB, error) {
	opener, dsn, err := OpenerFor(cfg)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(dsn, timeout, opener)
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver)
	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Models lists every persisted entity.
func Models() []any {
	return []any{
		&authentity.User{},
		&authentity.WatchEntry{},
		&videoentity.Video{},
		&commententity.Comment{},
		&tweetentity.Tweet{},
		&likeentity.Like{},
		&playlistentity.Playlist{},
		&playlistentity.PlaylistVideo{},
		&subscriptionentity.Subscription{},
		&cascadeentity.Task{},
	}
}

// Migrate creates or updates the tables for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
