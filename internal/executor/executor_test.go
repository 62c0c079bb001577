package executor

import (
	"context"
	stderrors "errors"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun_AllIndicesProcessed(t *testing.T) {
	const n = 50
	exec := New(4)

	var calls [n]int32
	err := exec.Run(context.Background(), n, func(ctx context.Context, index int) error {
		atomic.AddInt32(&calls[index], 1)
		return nil
	})

	require.NoError(t, err)
	for i, count := range calls {
		assert.Equal(t, int32(1), count, "index %d must run exactly once", i)
	}
}

func TestRun_RespectsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
	}{
		{name: "limit 1", limit: 1},
		{name: "limit 4", limit: 4},
		{name: "limit 16", limit: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := New(tt.limit)

			var inFlight, peak int32
			err := exec.Run(context.Background(), 40, func(ctx context.Context, index int) error {
				current := atomic.AddInt32(&inFlight, 1)
				for {
					observed := atomic.LoadInt32(&peak)
					if current <= observed || atomic.CompareAndSwapInt32(&peak, observed, current) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil
			})

			require.NoError(t, err)
			assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(tt.limit))
			assert.Positive(t, atomic.LoadInt32(&peak))
		})
	}
}

func TestRun_FirstErrorPropagates(t *testing.T) {
	exec := New(2)
	boom := stderrors.New("boom")

	err := exec.Run(context.Background(), 20, func(ctx context.Context, index int) error {
		if index == 3 {
			return boom
		}
		time.Sleep(time.Millisecond)
		return nil
	})

	assert.ErrorIs(t, err, boom)
}

func TestRun_CompletionOrderIrrelevant(t *testing.T) {
	const n = 32
	exec := New(8)

	// Deliberately interleave completion order; every operation still
	// writes only its own slot.
	results := make([]int, n)
	err := exec.Run(context.Background(), n, func(ctx context.Context, index int) error {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		results[index] = index + 1
		return nil
	})

	require.NoError(t, err)
	for i, got := range results {
		assert.Equal(t, i+1, got)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	exec := New(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var started int32
	err := exec.Run(ctx, 10, func(ctx context.Context, index int) error {
		atomic.AddInt32(&started, 1)
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&started))
}

func TestRun_ZeroOperations(t *testing.T) {
	exec := New(4)

	err := exec.Run(context.Background(), 0, func(ctx context.Context, index int) error {
		t.Fatal("work must not be called")
		return nil
	})

	assert.NoError(t, err)
}

func TestNew_DefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, New(0).Limit())
	assert.Equal(t, DefaultLimit, New(-3).Limit())
	assert.Equal(t, 7, New(7).Limit())
}
