package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv enables debug logging on stderr when set to "1".
const DebugEnv = "PM_DEBUG"

// newLogger builds the stderr logger. Only errors are logged unless
// PM_DEBUG=1; load warnings reach the user through IO.Warn instead.
func newLogger(errOut io.Writer, env map[string]string) *zap.Logger {
	level := zapcore.ErrorLevel
	if env[DebugEnv] == "1" {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(errOut),
		level,
	)

	return zap.New(core)
}
