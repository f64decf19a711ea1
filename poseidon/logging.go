package poseidon

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu  sync.RWMutex
	pkgLogger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Str("component", "poseidon").Logger()
)

// logger returns this package's contextual logger, matching the teacher's
// logger.Logger().With()...Logger() call-site pattern. Logged at Debug so
// a permutation call stays silent by default.
func logger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return pkgLogger
}

// SetLogger overrides the package logger, for callers that want Poseidon's
// debug traces folded into their own structured log stream.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	pkgLogger = l
}
