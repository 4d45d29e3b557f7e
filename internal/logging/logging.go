// Package logging configures the application wide slog loggers: a structured
// JSON logger for machine consumption and a human-readable text logger for
// the console, plus rotating per-service file loggers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var structuredLogger *slog.Logger
var humanReadableLogger *slog.Logger

// currentLevel is shared by every handler so SetOutput keeps the level
// chosen through SetLevel.
var currentLevel = new(slog.LevelVar)

const LevelTrace = slog.Level(-8)

// Custom level names beyond the slog defaults.
var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
}

func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}
		a.Value = slog.StringValue(levelLabel)
	}
	return a
}

// Init initializes the logging system with structured and human-readable loggers
// and installs the structured logger as the process default.
func Init() {
	SetLevel(slog.LevelInfo)
}

// SetLevel rebuilds both loggers with the given minimum level.
func SetLevel(level slog.Level) {
	currentLevel.Set(level)
	structuredLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       currentLevel,
		ReplaceAttr: replaceLevelNames,
	}))

	humanReadableLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       currentLevel,
		ReplaceAttr: replaceLevelNames,
	}))

	slog.SetDefault(structuredLogger)
}

// SetOutput redirects logger output at the current level, e.g. for tests
// capturing log lines.
func SetOutput(structuredOutput, humanReadableOutput io.Writer) {
	structuredLogger = slog.New(slog.NewJSONHandler(structuredOutput, &slog.HandlerOptions{
		Level:       currentLevel,
		ReplaceAttr: replaceLevelNames,
	}))
	humanReadableLogger = slog.New(slog.NewTextHandler(humanReadableOutput, &slog.HandlerOptions{
		Level:       currentLevel,
		ReplaceAttr: replaceLevelNames,
	}))
	slog.SetDefault(structuredLogger)
}

// Structured returns the globally configured structured (JSON) logger.
// Returns nil if Init() has not been called.
func Structured() *slog.Logger {
	return structuredLogger
}

// HumanReadable returns the globally configured human-readable (Text) logger.
func HumanReadable() *slog.Logger {
	return humanReadableLogger
}

// ForService creates a new logger instance with the 'service' attribute added,
// using the global structured logger as the base. Returns nil before Init().
func ForService(serviceName string) *slog.Logger {
	if structuredLogger == nil {
		return nil
	}
	return structuredLogger.With("service", serviceName)
}

// --- Convenience functions using the default logger ---

func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// Trace logs a message at the custom Trace level.
func Trace(msg string, args ...any) {
	slog.Log(context.TODO(), LevelTrace, msg, args...)
}

// FileLoggerConfig controls rotation of file-backed loggers.
type FileLoggerConfig struct {
	MaxSizeMB  int // rotate after this size
	MaxBackups int // number of rotated files to keep
	MaxAgeDays int // days before rotated files are pruned
}

// DefaultFileLoggerConfig returns the rotation defaults used when the caller
// passes a zero config.
func DefaultFileLoggerConfig() FileLoggerConfig {
	return FileLoggerConfig{
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// NewFileLogger creates a slog.Logger writing JSON logs to filePath with
// lumberjack rotation. All records carry a 'service' attribute. It returns
// the logger, a close function for the underlying writer, and an error if
// the log directory cannot be created.
func NewFileLogger(filePath, serviceName string, level slog.Level, cfg FileLoggerConfig) (*slog.Logger, func() error, error) {
	// lumberjack does not create directories
	logDir := filepath.Dir(filePath)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	defaults := DefaultFileLoggerConfig()
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = defaults.MaxSizeMB
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = defaults.MaxBackups
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = defaults.MaxAgeDays
	}

	logWriter := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   false,
	}

	fileHandler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})

	logger := slog.New(fileHandler).With("service", serviceName)

	return logger, logWriter.Close, nil
}
