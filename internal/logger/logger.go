// Package logger builds the zap loggers used by the hsdate CLI.
package logger

import "go.uber.org/zap"

// New returns a zap logger. When debug is true, it uses the development
// config (human-readable, debug level); otherwise the production config
// (JSON, info level).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		//nolint:wrapcheck
		return zap.NewDevelopment()
	}
	//nolint:wrapcheck
	return zap.NewProduction()
}

// Sync flushes logger, ignoring the errors returned for unsyncable
// terminals.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}
