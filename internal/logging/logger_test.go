package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/comic-sorter/internal/config"
	"github.com/vrsandeep/comic-sorter/internal/logging"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "text", Writer: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("organize batch finished", "moved", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="organize batch finished"`)
	assert.Contains(t, out, "moved=3")
	assert.NotContains(t, out, ".go:", "info loggers carry no source location")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "JSON", Writer: &buf})
	require.NoError(t, err)

	logger.Debug("lookup failed", "title", "Saga")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "Saga", entry["title"])
	assert.Contains(t, entry, "source")
}

func TestNewUnsupportedFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported")
}

func TestNewFromConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Log.Level = "warn"

	logger, err := logging.NewFromConfig(cfg, &buf)
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	logger, err = logging.NewFromConfig(nil, &buf)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestDiscard(t *testing.T) {
	assert.False(t, logging.Discard().Enabled(t.Context(), slog.LevelError))
}
