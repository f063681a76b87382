package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/pokedex/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Formats(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	t.Run("production writes JSON", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.Default()
		cfg.Environment = "production"

		log := Setup(cfg, &buf)
		WithRequestID(log, "abc").Info("page loaded", "offset", 20)

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "page loaded", line["msg"])
		assert.Equal(t, "abc", line["request_id"])
	})

	t.Run("development writes text and honours level", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.Default()
		cfg.LogLevel = slog.LevelWarn

		log := Setup(cfg, &buf)
		log.Info("hidden")
		WithError(log, errors.New("boom")).Warn("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown")
		assert.Contains(t, out, "error=boom")
	})
}

func TestOpenFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "pokedex.log")

	w, err := OpenFile(cfg)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	cfg.LogFile = ""
	w, err = OpenFile(cfg)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}
