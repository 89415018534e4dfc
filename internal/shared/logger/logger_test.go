package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/momogate/internal/shared/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.log")

	log, err := New(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, false)
	require.NoError(t, err)

	log.Debug("dropped")
	log.Info("deposit accepted", "deposit_id", "d-1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"deposit accepted"`)
	assert.Contains(t, string(data), `"deposit_id":"d-1"`)
	assert.NotContains(t, string(data), "dropped")
}

func TestNewNop(t *testing.T) {
	log := NewNop().Named("gateway").With("k", "v")
	assert.NotPanics(t, func() {
		log.Infow("nothing", "a", 1)
		log.Errorw("still nothing")
	})
}
