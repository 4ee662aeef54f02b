package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/greentrack/internal/energy"
)

type countingRandom struct {
	calls chan struct{}
}

func (c countingRandom) Float64() float64 {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 0.5
}

func TestSchedulerRefreshesBoard(t *testing.T) {
	rnd := countingRandom{calls: make(chan struct{}, 16)}
	board := energy.NewGenerationBoard(time.UTC, rnd)

	// drain the draws made by the initial refresh
	for len(rnd.calls) > 0 {
		<-rnd.calls
	}

	s := New(board, time.Second, time.UTC, zaptest.NewLogger(t))
	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-rnd.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("generation board was not refreshed")
	}
	assert.Equal(t, 175000, board.Latest().GridLoadMW)
}
