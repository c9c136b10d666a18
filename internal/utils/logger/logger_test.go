package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           EnvProd,
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.expectedLevel <= slog.LevelInfo, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))

	// атрибуты дочернего логгера не должны ломать вывод
	child := logger.With(slog.String("component", "test"))
	assert.NotPanics(t, func() { child.Info("hello", "key", "value") })
}

func TestWithLevel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level     string
		debugOn   bool
		infoOn    bool
		warningOn bool
	}{
		{level: "debug", debugOn: true, infoOn: true, warningOn: true},
		{level: "info", debugOn: false, infoOn: true, warningOn: true},
		{level: "warn", debugOn: false, infoOn: false, warningOn: true},
		{level: "garbage", debugOn: false, infoOn: true, warningOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			for _, env := range []string{EnvLocal, EnvProd} {
				l := WithLevel(env, tt.level)
				assert.Equal(t, tt.debugOn, l.Enabled(ctx, slog.LevelDebug))
				assert.Equal(t, tt.infoOn, l.Enabled(ctx, slog.LevelInfo))
				assert.Equal(t, tt.warningOn, l.Enabled(ctx, slog.LevelWarn))
			}
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tui.log")

	log, closer, err := NewFile(path, "warn")
	require.NoError(t, err)

	log.Info("skipped")
	log.Warn("written", "key", "value")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipped")
	assert.Contains(t, string(data), `"msg":"written"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

type quality int

func (q quality) String() string { return fmt.Sprintf("%dp", int(q)) }

func TestPrettyHandler_ErrorText(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cause := fmt.Errorf("transport error: %w", errors.New("dial tcp: connection refused"))
	log.With("component", "http_client").
		With("last", errors.New("previous failure")).
		Error("Ошибка получения списка видео",
			"error", cause,
			"quality", quality(720),
			slog.Group("request", slog.String("id", "r1"), slog.Any("error", errors.New("timeout"))),
		)

	out := buf.String()
	assert.Contains(t, out, `"error": "transport error: dial tcp: connection refused"`)
	assert.Contains(t, out, `"last": "previous failure"`)
	assert.Contains(t, out, `"quality": "720p"`)
	assert.Contains(t, out, `"id": "r1"`)
	assert.Contains(t, out, `"error": "timeout"`)
	assert.Contains(t, out, `"component": "http_client"`)
	assert.NotContains(t, out, "{}")
}

func TestSetup(t *testing.T) {
	ctx := context.Background()

	// без явного уровня действует уровень окружения
	assert.True(t, Setup(EnvLocal, "").Enabled(ctx, slog.LevelDebug))
	assert.True(t, Setup(EnvDev, "").Enabled(ctx, slog.LevelDebug))
	assert.False(t, Setup(EnvProd, "").Enabled(ctx, slog.LevelDebug))

	assert.False(t, Setup(EnvLocal, "warn").Enabled(ctx, slog.LevelInfo))
	assert.True(t, Setup(EnvProd, "debug").Enabled(ctx, slog.LevelDebug))
}
