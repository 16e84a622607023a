// Package log is the process-wide logrus logger. It discards everything unless logs.write is set.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/where"
)

// Fields is an alias so callers don't import logrus for structured entries.
type Fields = logrus.Fields

var logger = quiet()

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Setup points the logger at today's file under where.Logs and applies level and format from config.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = quiet()
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format(time.DateOnly)+".log")
	file, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(file)
	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(new(logrus.JSONFormatter))
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

// Enabled reports whether entries go anywhere.
func Enabled() bool {
	return logger.Out != io.Discard
}

// WithFields returns a structured entry.
func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}
