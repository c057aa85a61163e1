package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger; it is a no-op until Init succeeds.
var Log = zap.NewNop()

// Init builds Log. Without a log file the console encoder writes to stderr so
// that stdout stays free for command output; with one, JSON lines go to the
// file and stderr.
func Init(level string, logFile string) error {
	var config zap.Config

	if logFile != "" {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{logFile, "stderr"}
	} else {
		config = zap.NewDevelopmentConfig()
		config.OutputPaths = []string{"stderr"}
		config.DisableStacktrace = true
	}

	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	log, err := config.Build()
	if err != nil {
		return err
	}
	Log = log

	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}
