package time

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
)

func TestRealTimeProvider(t *testing.T) {
	p := NewRealTimeProvider()

	t.Run("should report UTC and elapsed time", func(t *testing.T) {
		start := p.Now()
		assert.Equal(t, time.UTC, start.Location())

		p.Sleep(2 * core.Millisecond)
		assert.GreaterOrEqual(t, p.Since(start).Std(), 2*time.Millisecond)
	})

	t.Run("should cancel after timeout", func(t *testing.T) {
		ctx, cancel := p.WithTimeout(context.Background(), core.Millisecond)
		defer cancel()

		<-ctx.Done()
		assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	})
}
