// Command degreeportal serves the degree portal API.
//
// @title Degree Portal API
// @version 1.0
// @description Degree course catalog and applications with token-based authentication.
// @BasePath /
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/degreeportal-go/config"
	"github.com/user/degreeportal-go/db"
	"github.com/user/degreeportal-go/logging"
	"github.com/user/degreeportal-go/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	app := &cli.App{
		Name:  "degreeportal",
		Usage: "degree course applications API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: migrateUp,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the default logger.
func setup() (*config.AppConfig, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func migrateUp(c *cli.Context) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return fmt.Errorf("migrate needs STORE_DRIVER=%s", config.StoreDriverPostgres)
	}
	if err := db.RunMigrations(cfg.Database.URL); err != nil {
		return err
	}
	slog.Info("migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	services := server.NewServices(cfg.Auth, stores)
	if err := services.Users.EnsureBootstrapIdentity(ctx); err != nil {
		return fmt.Errorf("bootstrap administrator: %w", err)
	}

	return server.Run(ctx, cfg.Server, server.NewRouter(services, cfg.Server, logger))
}

func openStores(ctx context.Context, cfg *config.AppConfig) (server.Stores, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Warn("using in-memory stores; data is lost on restart")
		return server.NewMemoryStores(), func() {}, nil
	}

	if cfg.Database.RunMigrations {
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			return server.Stores{}, nil, err
		}
		slog.Info("migrations applied")
	}

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return server.Stores{}, nil, err
	}
	slog.Info("database pool ready", "maxConns", cfg.Database.MaxSize)
	return server.NewPostgresStores(pool), pool.Close, nil
}
