package pg

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies the SQL migrations under cfg.MigrationsPath with goose.
// goose speaks database/sql, so the pgx pool is bridged through stdlib;
// the wrapper shares the pool's connections.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config) error {
	if _, err := os.Stat(cfg.MigrationsPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Join(ErrMigrationsNotFound, err)
		}
		return errors.Join(ErrMigrate, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrMigrate, err)
	}
	if err := goose.UpContext(ctx, db, cfg.MigrationsPath); err != nil {
		return errors.Join(ErrMigrate, err)
	}
	return nil
}
