package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	ServerTypeGuard = "guard"
	ServerTypeAdmin = "admin"
)

type Options struct {
	// Dir is where <serverType>.log is written. Empty disables the file sink.
	Dir string
	// Level overrides LOG_LEVEL.
	Level string
	// Console mirrors every entry to stdout.
	Console bool
}

func DefaultOptions() Options {
	return Options{Dir: "logs", Console: true}
}

func NewLogger(serverType string, opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(resolveLevel(opts.Level))

	if opts.Dir == "" {
		logger.SetOutput(os.Stdout)
		return logger, nil
	}

	logFile, err := logFilePath(opts.Dir, serverType)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0750); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}
	logger.SetOutput(asyncWriter)

	if opts.Console {
		logger.AddHook(NewAsyncConsoleHook(os.Stdout, 1024, nil))
	}
	return logger, nil
}

func resolveLevel(explicit string) logrus.Level {
	raw := explicit
	if raw == "" {
		raw = os.Getenv("LOG_LEVEL")
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func logFilePath(dir, serverType string) (string, error) {
	switch serverType {
	case ServerTypeGuard, ServerTypeAdmin:
	default:
		return "", fmt.Errorf("invalid server type %q", serverType)
	}
	return filepath.Join(filepath.Clean(dir), serverType+".log"), nil
}
