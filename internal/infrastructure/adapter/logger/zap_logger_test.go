package logger

import (
	"testing"

	"github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	t.Run("should drop entries below the level", func(t *testing.T) {
		obsCore, logs := observer.New(zap.DebugLevel)
		log := NewZapLoggerFrom(zap.New(obsCore), core.LogLevelWarn)

		log.Info("ignored", nil)
		log.Warn("Wallet debit rejected", map[string]any{"user_id": uint64(7)})

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "Wallet debit rejected", entry.Message)
		assert.Equal(t, uint64(7), entry.ContextMap()["user_id"])
		assert.Equal(t, core.LogLevelWarn, log.GetLevel())
	})

	t.Run("should attach fields with With", func(t *testing.T) {
		obsCore, logs := observer.New(zap.DebugLevel)
		log := NewZapLoggerFrom(zap.New(obsCore), core.LogLevelDebug)

		child := log.With(map[string]any{"request_id": "abc"})
		child.Debug("Handling request", map[string]any{"path": "/api/v1/cart"})

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "abc", fields["request_id"])
		assert.Equal(t, "/api/v1/cart", fields["path"])
	})

	t.Run("should share the level with children", func(t *testing.T) {
		obsCore, logs := observer.New(zap.DebugLevel)
		log := NewZapLoggerFrom(zap.New(obsCore), core.LogLevelDebug)
		child := log.With(map[string]any{"component": "ledger"})

		log.SetLevel(core.LogLevelError)
		child.Info("ignored", nil)

		assert.Equal(t, 0, logs.Len())
	})
}

func TestNoopLogger(t *testing.T) {
	log := NewNoopLogger()
	log.SetLevel(core.LogLevelDebug)

	assert.Equal(t, core.LogLevelDebug, log.GetLevel())
	assert.Same(t, log, log.With(map[string]any{"a": 1}))
	assert.NoError(t, log.Flush())
}
