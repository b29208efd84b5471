package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zhouzirui/mindcare/backend/internal/config"
)

func TestNewHonoursLevel(t *testing.T) {
	log, err := New(config.LogConfig{Level: "warn", Encoding: "json"})
	require.NoError(t, err)
	defer log.Sync() //nolint:errcheck

	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))
	require.Same(t, log, zap.L())
}

func TestNewFallsBackOnUnknownLevel(t *testing.T) {
	log, err := New(config.LogConfig{Level: "chatty", Encoding: "xml"})
	require.NoError(t, err)

	require.True(t, log.Core().Enabled(zapcore.InfoLevel))
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
