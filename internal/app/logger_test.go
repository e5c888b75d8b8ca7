package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("info", "json", &buf)

		logger.Info("hello", "model", "hh")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "hh", entry["model"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("warn", "text", &buf)

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("chatty", "text", &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
