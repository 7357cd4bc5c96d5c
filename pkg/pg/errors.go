package pg

import "errors"

var (
	ErrParseConfig        = errors.New("pg: failed to parse connection config")
	ErrConnect            = errors.New("pg: failed to open connection")
	ErrHealthcheck        = errors.New("pg: healthcheck failed")
	ErrMigrate            = errors.New("pg: failed to apply migrations")
	ErrMigrationsNotFound = errors.New("pg: migrations directory not found")
)
