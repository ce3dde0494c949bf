// Package logging builds the file-backed debug logger. Backdeck owns the
// whole terminal while running, so nothing may write to stdout or stderr;
// diagnostics go to a rotating log file instead.
package logging

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "backdeck.log"

// New returns a JSON logger rotating inside dir. An empty dir disables
// logging entirely. debug lowers the level to Debug, which includes one
// line per API call.
func New(dir string, debug bool) *zap.Logger {
	if strings.TrimSpace(dir) == "" {
		return zap.NewNop()
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    5,  // megabytes
		MaxBackups: 2,  // files
		MaxAge:     14, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		level,
	)
	return zap.New(core)
}
