// Package pg provides the PostgreSQL connection pool, schema migrations,
// and error classification helpers shared by the portal's storage adapters.
// The pool is constructed once at process start and passed by handle;
// there is no package-level client.
package pg
