// Package logging builds the service logger: an ectologger front-end with a
// zap-backed sink so entries come out as structured JSON (or console output
// during local development).
package logging

import (
	"encoding/json"

	"github.com/Gobusters/ectologger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level  string
	Pretty bool
}

// New creates the application logger. The zap core handles encoding and level
// filtering; ectologger provides the context/field chaining API used across
// the codebase.
func New(cfg Config) (ectologger.Logger, func(), error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Pretty {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	zlog, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}

	logger := ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		entry, err := json.Marshal(msg)
		if err != nil {
			zlog.Error("failed to encode log entry", zap.Error(err))
			return
		}
		zlog.Info(string(entry))
	})

	cleanup := func() {
		_ = zlog.Sync()
	}

	return logger, cleanup, nil
}

// NewNoop returns a logger that discards everything. Used in tests.
func NewNoop() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}
