package narrowphase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// task splits data into workersCount contiguous chunks, each processed by its own
// goroutine. fn receives the index of the element in data. The first error stops the
// other workers before their next element.
func task[T any](ctx context.Context, workersCount int, data []T, fn func(i int, data T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i, data[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
