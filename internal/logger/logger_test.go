package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNew(t *testing.T) {
	l, err := New("error")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestConfig(t *testing.T) {
	cfg := Config("info")
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
	assert.Equal(t, "message", cfg.EncoderConfig.MessageKey)
}
