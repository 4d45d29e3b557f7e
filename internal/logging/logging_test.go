package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutputCapturesBothLoggers(t *testing.T) {
	SetLevel(slog.LevelInfo)
	t.Cleanup(Init)

	var structured, human bytes.Buffer
	SetOutput(&structured, &human)

	Info("ingestion started", "source", "bulk")
	HumanReadable().Warn("model slow")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(structured.Bytes(), &entry))
	assert.Equal(t, "ingestion started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "bulk", entry["source"])

	assert.Contains(t, human.String(), "model slow")
}

func TestTraceRespectsConfiguredLevel(t *testing.T) {
	t.Cleanup(Init)

	SetLevel(slog.LevelInfo)
	var quiet bytes.Buffer
	SetOutput(&quiet, &bytes.Buffer{})
	Trace("classifier request payload")
	assert.Empty(t, quiet.String(), "trace lines are dropped at info level")

	SetLevel(LevelTrace)
	var verbose bytes.Buffer
	SetOutput(&verbose, &bytes.Buffer{})
	Trace("classifier request payload")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(verbose.Bytes(), &entry))
	assert.Equal(t, "classifier request payload", entry["msg"])
	assert.Equal(t, "TRACE", entry["level"], "custom level keeps its name")
}

func TestForServiceTagsEntries(t *testing.T) {
	SetLevel(slog.LevelInfo)
	t.Cleanup(Init)

	var structured bytes.Buffer
	SetOutput(&structured, &bytes.Buffer{})

	ForService("export").Info("export rendered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(structured.Bytes(), &entry))
	assert.Equal(t, "export", entry["service"])
}

func TestNewFileLoggerWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closeFn, err := NewFileLogger(path, "server", slog.LevelInfo, FileLoggerConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, closeFn()) })

	logger.Info("listening", "port", "8080")

	assert.FileExists(t, path)
}
