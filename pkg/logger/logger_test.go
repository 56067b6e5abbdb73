package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorAddsErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Error("fetch failed", errors.New("boom"), "resource", "tx")
	Info("served", "status", 200)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "fetch failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "tx", fields["resource"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.EqualValues(t, 200, entries[1].ContextMap()["status"])
}

func TestInitFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init(Config{Level: "loud", Encoding: "console"}))
	t.Cleanup(func() { Set(zap.NewNop()) })
	assert.False(t, get().Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, get().Desugar().Core().Enabled(zapcore.InfoLevel))
}
