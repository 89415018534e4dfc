package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTextBuffer() (*bytes.Buffer, slog.Handler) {
	var buf bytes.Buffer
	return &buf, slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name             string
		level            slog.Level
		showSourceLevels []slog.Level
		shouldHaveSource bool
	}{
		{
			name:             "info is quiet by default",
			level:            slog.LevelInfo,
			showSourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
		},
		{
			name:             "warn carries source",
			level:            slog.LevelWarn,
			showSourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			shouldHaveSource: true,
		},
		{
			name:             "error carries source",
			level:            slog.LevelError,
			showSourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			shouldHaveSource: true,
		},
		{
			name:             "debug mode shows source everywhere",
			level:            slog.LevelDebug,
			showSourceLevels: []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError},
			shouldHaveSource: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, base := newTextBuffer()
			log := slog.New(NewConditionalSourceHandler(base, tt.showSourceLevels...))

			log.Log(context.Background(), tt.level, "deposit rejected")

			assert.Equal(t, tt.shouldHaveSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	buf, base := newTextBuffer()
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).
		With("api_version", "v2").
		WithGroup("request")

	log.Info("status fetched", "path", "/v2/deposits")

	out := buf.String()
	assert.NotContains(t, out, "source=")
	assert.Contains(t, out, "api_version=v2")
	assert.Contains(t, out, "request.path=/v2/deposits")
}

func TestConditionalSourceHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler := NewConditionalSourceHandler(base, slog.LevelError)

	assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
}

func TestConditionalSourceHandler_RedactsCredentials(t *testing.T) {
	buf, base := newTextBuffer()
	log := slog.New(NewConditionalSourceHandler(base)).With("api_token", "sk-live-123")

	log.Info("session created",
		"Authorization", "Bearer sk-live-123",
		slog.Group("request", "token", "sk-live-123", "path", "/deposits"),
	)

	out := buf.String()
	assert.NotContains(t, out, "sk-live-123")
	assert.Contains(t, out, "api_token="+redacted)
	assert.Contains(t, out, "Authorization="+redacted)
	assert.Contains(t, out, "request.token="+redacted)
	assert.Contains(t, out, "request.path=/deposits")
}
