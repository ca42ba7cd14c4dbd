package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gamelist/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newTextLogger(&buf, config.LogLevelWarning)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message ", 42)

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message 42")
}

func TestNewLogger_Console(t *testing.T) {
	log, err := NewLogger(config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole})
	require.NoError(t, err)
	require.NotNil(t, log)

	require.NotPanics(t, func() {
		log.Info("test")
		log.Warn("test")
		log.Error("test")
	})
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := NewLogger(config.LoggerSettings{
		LogLevel:   config.LogLevelInfo,
		LogType:    config.LogTypeFile,
		FilePath:   path,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     1,
	})
	require.NoError(t, err)

	log.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNewLogger_InvalidSettings(t *testing.T) {
	_, err := NewLogger(config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile})
	require.Error(t, err)
}
