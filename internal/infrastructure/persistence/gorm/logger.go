package gorm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration after which a statement is logged as slow
const SlowQueryThreshold = 200 * time.Millisecond

// LogWriter routes GORM's log output into zap
type LogWriter struct {
	logger *zap.Logger
}

// Printf implements the logger.Writer interface
func (w *LogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	switch {
	case strings.Contains(msg, "SLOW SQL"):
		w.logger.Warn("slow query", zap.String("message", msg))
	case strings.Contains(msg, "error"):
		w.logger.Error("query error", zap.String("message", msg))
	default:
		w.logger.Debug("query", zap.String("message", msg))
	}
}

// NewLogger creates a GORM logger writing to log. level uses the
// application's names: debug logs every statement, info and warn log slow
// statements and errors, anything else only errors.
func NewLogger(log *zap.Logger, level string) logger.Interface {
	logLevel := logger.Error
	switch level {
	case "debug":
		logLevel = logger.Info
	case "info", "warn":
		logLevel = logger.Warn
	}

	return logger.New(
		&LogWriter{logger: log.Named("gorm")},
		logger.Config{
			SlowThreshold:             SlowQueryThreshold,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
