package pipeline

import (
	"context"
	"sync"
)

// BatchResult is one output slot of RunBatched: either a value or the
// captured error for the corresponding input.
type BatchResult[R any] struct {
	Value R
	Err   error
}

// RunBatched drives op over inputs in consecutive groups of at most
// batchSize. Every item in a group runs concurrently and the whole
// group finishes before the next group starts, so back-pressure is
// coarse-grained by group rather than by a shared semaphore. Output
// order matches input order regardless of completion order, one slot
// per input. A failing item captures its error in its slot; it never
// cancels siblings and never aborts later groups.
func RunBatched[T, R any](ctx context.Context, inputs []T, op func(context.Context, T) (R, error), batchSize int) []BatchResult[R] {
	if batchSize < 1 {
		batchSize = 1
	}

	results := make([]BatchResult[R], len(inputs))
	for start := 0; start < len(inputs); start += batchSize {
		end := start + batchSize
		if end > len(inputs) {
			end = len(inputs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				value, err := op(ctx, inputs[i])
				results[i] = BatchResult[R]{Value: value, Err: err}
			}(i)
		}
		wg.Wait()
	}

	return results
}
