package helper

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessParallel(t *testing.T) {
	ctx := context.Background()

	t.Run("Processes all items and keeps input order", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5}

		results, errs := ProcessParallel(ctx, items, DefaultParallelOptions(), func(ctx context.Context, index int, item int) (int, error) {
			return item * 10, nil
		})

		require.Len(t, results, len(items), "Expected one result per item")
		require.Len(t, errs, len(items), "Expected one error slot per item")
		for i, item := range items {
			assert.Equal(t, item*10, results[i], "Expected result at the item's own index")
			assert.NoError(t, errs[i])
		}
	})

	t.Run("Empty input returns empty slices", func(t *testing.T) {
		results, errs := ProcessParallel(ctx, []string{}, DefaultParallelOptions(), func(ctx context.Context, index int, item string) (string, error) {
			return item, nil
		})

		assert.Empty(t, results, "Expected no results for empty input")
		assert.Empty(t, errs, "Expected no errors for empty input")
	})

	t.Run("Errors are captured positionally", func(t *testing.T) {
		items := []int{0, 1, 2, 3}

		results, errs := ProcessParallel(ctx, items, DefaultParallelOptions(), func(ctx context.Context, index int, item int) (int, error) {
			if item%2 == 1 {
				return 0, fmt.Errorf("item %d failed", item)
			}
			return item, nil
		})

		assert.NoError(t, errs[0], "Expected even item to succeed")
		assert.Error(t, errs[1], "Expected odd item to fail")
		assert.NoError(t, errs[2], "Expected even item to succeed")
		assert.Error(t, errs[3], "Expected odd item to fail")
		assert.Contains(t, errs[1].Error(), "item 1", "Expected error to belong to its item")
		assert.Equal(t, 2, results[2], "Expected successful results to survive other items failing")
	})

	t.Run("Respects max workers", func(t *testing.T) {
		items := make([]int, 20)
		var active, maxActive int64

		opts := ParallelOptions{MaxWorkers: 3}
		_, errs := ProcessParallel(ctx, items, opts, func(ctx context.Context, index int, item int) (int, error) {
			current := atomic.AddInt64(&active, 1)
			for {
				max := atomic.LoadInt64(&maxActive)
				if current <= max || atomic.CompareAndSwapInt64(&maxActive, max, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
			return 0, nil
		})

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.LessOrEqual(t, atomic.LoadInt64(&maxActive), int64(3), "Expected at most MaxWorkers concurrent executions")
	})

	t.Run("Zero max workers falls back to default", func(t *testing.T) {
		items := []int{1, 2, 3}

		results, errs := ProcessParallel(ctx, items, ParallelOptions{}, func(ctx context.Context, index int, item int) (int, error) {
			return item, nil
		})

		require.Len(t, results, 3)
		for _, err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("Cancelled context records context error for unstarted items", func(t *testing.T) {
		cancelledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		items := []int{1, 2, 3}
		_, errs := ProcessParallel(cancelledCtx, items, ParallelOptions{MaxWorkers: 1}, func(ctx context.Context, index int, item int) (int, error) {
			return item, nil
		})

		for _, err := range errs {
			assert.ErrorIs(t, err, context.Canceled, "Expected context error for every item")
		}
	})
}
