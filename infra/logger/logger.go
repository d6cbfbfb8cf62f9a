package logger

import corelogger "github.com/kilianp07/curtail/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component using the process-wide options
// set by Configure. The APP_ENV=dev environment variable selects the console
// format.
func New(component string) Logger {
	return NewZerologLogger(component)
}
