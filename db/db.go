// Package db provides database connectivity and migration functionality for the degree portal.
// It creates the pgx connection pool, applies the schema migrations embedded in the binary,
// and translates PostgreSQL errors into apperror types.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // database/sql driver used by migrate's postgres driver

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/config"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewPool establishes the application's pgx connection pool and pings it.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, apperror.NewConfigError("invalid DATABASE_URL", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MinConns = 1
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create connection pool", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError("failed to reach database", err)
	}
	return pool, nil
}

// RunMigrations applies every pending up migration. No pending migration is not an error.
func RunMigrations(databaseURL string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return apperror.NewMigrationError("failed to open embedded migrations", err)
	}

	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return apperror.NewMigrationError("failed to open migration connection", err)
	}
	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return apperror.NewMigrationError("failed to create migration driver", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return apperror.NewMigrationError("failed to initialize migrations", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to apply migrations", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// MapError converts a pgx error into an apperror. notFound and duplicate are the
// client-facing messages for pgx.ErrNoRows and unique violations.
func MapError(err error, op, notFound, duplicate string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperror.NewNotFoundError(notFound, nil)
	case IsUniqueViolation(err):
		return apperror.NewDuplicateKeyError(duplicate, err)
	default:
		return apperror.NewDatabaseError(op, err)
	}
}
