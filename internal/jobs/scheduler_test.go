package jobs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (c *countingSweeper) Sweep(idle time.Duration) int {
	c.calls.Add(1)
	c.idle.Store(int64(idle))
	return 1
}

func TestScheduler_RunsSweep(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewScheduler(sweeper, "* * * * * *", 30*time.Minute, zerolog.Nop())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, int64(30*time.Minute), sweeper.idle.Load())
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler(&countingSweeper{}, "not a spec", time.Minute, zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestScheduler_DisabledWithoutIdle(t *testing.T) {
	sweeper := &countingSweeper{}
	s := NewScheduler(sweeper, "not a spec", 0, zerolog.Nop())
	assert.NoError(t, s.Start())
	s.Stop()
	assert.Zero(t, sweeper.calls.Load())
}
