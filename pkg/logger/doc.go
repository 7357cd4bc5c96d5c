// Package logger constructs the process-wide slog.Logger from a small set
// of options. Services receive loggers by injection; nothing here is global.
package logger
