// Package telemetry is a thin wrapper around "github.com/op/go-logging"
// that configures a single stdout-backed logger for the perft driver, so
// call sites just ask for a named logger instead of wiring backends and
// formatters themselves.
package telemetry

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

var backendOnce sync.Once

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-8.8s} %{level:-7.7s} %{message}`,
)

var levelByName = map[string]logging.Level{
	"critical": logging.CRITICAL,
	"error":    logging.ERROR,
	"warning":  logging.WARNING,
	"notice":   logging.NOTICE,
	"info":     logging.INFO,
	"debug":    logging.DEBUG,
}

// SetLevel sets the logging threshold for every logger returned by GetLogger,
// by name as it would appear in a config file ("debug", "info", ...).
// Unknown names are treated as "warning".
func SetLevel(name string) {
	level, ok := levelByName[name]
	if !ok {
		level = logging.WARNING
	}
	logging.SetLevel(level, "")
}

// GetLogger returns a named logger backed by stdout with a shared format.
// Call SetLevel once at startup to control verbosity across every logger.
func GetLogger(module string) *logging.Logger {
	backendOnce.Do(func() {
		backend := logging.NewLogBackend(os.Stdout, "", 0)
		logging.SetBackend(logging.NewBackendFormatter(backend, format))
	})
	return logging.MustGetLogger(module)
}
