package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds the PostgreSQL pool configuration, loaded from environment.
type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	MaxConns        int32         `env:"PG_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"PG_MIN_CONNS" envDefault:"2"`
	MaxConnIdleTime time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts   int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
	MigrationsPath  string        `env:"PG_MIGRATIONS_PATH" envDefault:"modules/portal/migrations"`
}

// Connect establishes a pgx connection pool, retrying transient startup
// failures so the portal survives a database that comes up slightly later
// than the application.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	var pool *pgxpool.Pool
	for attempt := range cfg.RetryAttempts {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnect, ctx.Err())
		case <-time.After(time.Duration(attempt+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrConnect, err)
}

// Healthcheck adapts a pool to the func(context.Context) error shape
// health endpoints expect.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheck, err)
		}
		return nil
	}
}

// IsNotFound reports whether err is pgx's no-rows result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports a unique constraint violation (SQLSTATE 23505),
// which backs the email and verification-key uniqueness the services assume.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
