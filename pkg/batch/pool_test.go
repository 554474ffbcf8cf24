package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunPreservesOrderAndResults(t *testing.T) {
	pool := NewPool(2)
	tasks := make([]Task, 5)
	for i := 0; i < 5; i++ {
		i := i
		tasks[i] = func(ctx context.Context) (interface{}, error) {
			if i == 3 {
				return nil, errors.New("boom")
			}
			return i * 10, nil
		}
	}

	results := pool.Run(context.Background(), tasks)
	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		if i == 3 {
			assert.EqualError(t, r.Err, "boom")
			continue
		}
		assert.NoError(t, r.Err)
		assert.Equal(t, i*10, r.Value)
	}
}

func TestPoolRunClampsWorkersToTaskCount(t *testing.T) {
	pool := NewPool(50)
	var concurrent int32
	var maxConcurrent int32
	tasks := make([]Task, 3)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (interface{}, error) {
			n := atomic.AddInt32(&concurrent, 1)
			for {
				cur := atomic.LoadInt32(&maxConcurrent)
				if n <= cur || atomic.CompareAndSwapInt32(&maxConcurrent, cur, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&concurrent, -1)
			return nil, nil
		}
	}

	results := pool.Run(context.Background(), tasks)
	assert.Len(t, results, 3)
	assert.LessOrEqual(t, int(atomic.LoadInt32(&maxConcurrent)), 3)
}

func TestPoolRunEmptyTasks(t *testing.T) {
	pool := NewPool(4)
	results := pool.Run(context.Background(), nil)
	assert.Empty(t, results)
}

func TestPoolRunHonoursCancellation(t *testing.T) {
	pool := NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{
		func(ctx context.Context) (interface{}, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	results := pool.Run(ctx, tasks)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestNewPoolClampsNonPositiveWorkers(t *testing.T) {
	pool := NewPool(0)
	assert.Equal(t, 1, pool.workers)
}
