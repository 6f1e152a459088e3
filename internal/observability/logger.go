// Package observability builds the process-wide console logger for the
// wardenctl binaries.
package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger(app string) zerolog.Logger {
	return InitConsoleLogger(app, false, zerolog.InfoLevel)
}

// InitConsoleLogger installs the global logger with explicit color and
// level control, for binaries that take both from flags.
func InitConsoleLogger(app string, noColor bool, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	return logger
}
