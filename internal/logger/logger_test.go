package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewHonoursLevel(t *testing.T) {
	l, err := New(Config{Environment: EnvironmentProduction, Level: "error"})
	require.NoError(t, err)

	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewDefaultLevels(t *testing.T) {
	prod, err := New(Config{Environment: EnvironmentProduction})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, prod.Core().Enabled(zapcore.WarnLevel))

	dev, err := New(Config{Environment: EnvironmentDevelopment})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(Config{Environment: "staging-ish"})
	assert.Error(t, err)

	_, err = New(Config{Environment: EnvironmentProduction, Level: "loud"})
	assert.Error(t, err)
}
