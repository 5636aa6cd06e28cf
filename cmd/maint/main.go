// Command maint runs maintenance tasks against the configured database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"vidtube_backend/internal/app/di"
	"vidtube_backend/internal/platform/config"
	"vidtube_backend/internal/platform/db"
	"vidtube_backend/internal/platform/logger"
)

func main() {
	_ = godotenv.Load(".env")

	app := &cli.Command{
		Name:  "maint",
		Usage: "Database maintenance for the video platform backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
				Sources: cli.EnvVars(config.EnvKeyConfigFile),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or update every table",
				Action: migrate,
			},
			{
				Name:  "cascade",
				Usage: "Inspect and retry queued cleanup steps",
				Commands: []*cli.Command{
					{
						Name:  "retry",
						Usage: "Retry pending cleanup steps once",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "batch",
								Usage: "Maximum number of steps to retry",
								Value: 100,
							},
						},
						Action: retryCascade,
					},
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("maint failed", "error", err)
		os.Exit(1)
	}
}

func load(cmd *cli.Command) (*config.Config, *gorm.DB, error) {
	if path := cmd.String("config"); path != "" {
		if err := os.Setenv(config.EnvKeyConfigFile, path); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	gdb, err := db.Open(db.ConfigFrom(cfg.Database), cfg.Database.ConnTimeout, false)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gdb, nil
}

func migrate(_ context.Context, cmd *cli.Command) error {
	_, gdb, err := load(cmd)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	slog.Info("migrations applied")
	return nil
}

func retryCascade(ctx context.Context, cmd *cli.Command) error {
	cfg, gdb, err := load(cmd)
	if err != nil {
		return err
	}
	res, err := di.NewCleaner(cfg.Cascade, gdb).RetryPending(ctx, cmd.Int("batch"))
	if err != nil {
		return err
	}
	fmt.Printf("cleanup steps done: %d, still failing: %d\n", res.Done, res.Failed)
	return nil
}
