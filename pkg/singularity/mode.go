package singularity

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// ErrorMode controls how lifetime violations surface. It is process-wide
// and meant to be resolved once during initialization, not per call.
type ErrorMode int32

const (
	// ModeRecover returns violations as ordinary error values. This is
	// the default.
	ModeRecover ErrorMode = iota

	// ModeFatal logs the violation and terminates the process at the
	// point of detection, with no unwinding. Intended for environments
	// where error propagation is unavailable.
	ModeFatal
)

// String returns the mode name.
func (m ErrorMode) String() string {
	switch m {
	case ModeRecover:
		return "recover"
	case ModeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var errorMode atomic.Int32

// SetErrorMode installs the process-wide error mode. Call during program
// initialization, before managers are in use.
func SetErrorMode(m ErrorMode) {
	errorMode.Store(int32(m))
}

// CurrentErrorMode returns the process-wide error mode.
func CurrentErrorMode() ErrorMode {
	return ErrorMode(errorMode.Load())
}

// exit is the process-termination hook for ModeFatal, replaceable in tests.
var exit = func(code int) { os.Exit(code) }

// fail surfaces a violation in the configured mode: in ModeRecover it
// returns err for the caller to handle; in ModeFatal it logs and exits.
func fail(logger *slog.Logger, err error) error {
	if CurrentErrorMode() == ModeFatal {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("lifetime violation", slog.String("error", err.Error()))
		exit(1)
	}
	return err
}
