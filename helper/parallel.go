package helper

import (
	"context"
	"sync"
)

// ParallelOptions configures parallel processing.
type ParallelOptions struct {
	// MaxWorkers is the maximum number of concurrent workers.
	MaxWorkers int
}

// DefaultParallelOptions returns the default parallel processing options.
func DefaultParallelOptions() ParallelOptions {
	return ParallelOptions{
		MaxWorkers: 10,
	}
}

// ProcessParallel runs itemFunc for every item on a bounded worker pool.
// Results and errors are returned positionally, so errs[i] belongs to items[i].
// A cancelled context records ctx.Err() for every item not yet started.
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))

	if len(items) == 0 {
		return results, errs
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = DefaultParallelOptions().MaxWorkers
	}
	if maxWorkers > len(items) {
		maxWorkers = len(items)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				// Each worker writes to its own index, no locking needed
				results[i], errs[i] = itemFunc(ctx, i, items[i])
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	return results, errs
}
