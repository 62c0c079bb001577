// Package executor runs part digest operations with bounded concurrency.
// This includes managing the concurrency limit and coordinating failure
// propagation across in-flight operations.
//
// Chunks are admitted in index order but may complete in any order. Each
// operation writes only to its own pre-assigned result slot, so no locking
// is needed around results: slots are disjoint, write-once, and read only
// after every operation has settled. That invariant is what makes the final
// ETag independent of scheduling order.
package executor

import (
	"context"
	"fmt"
	"sync"
)

// DefaultLimit is the concurrency limit used when none is configured.
const DefaultLimit = 4

// Executor runs indexed operations with a hard cap on how many execute
// simultaneously.
type Executor struct {
	limit     int
	semaphore chan struct{}
}

// New creates an executor that runs at most limit operations at once.
// A non-positive limit falls back to DefaultLimit; callers that need a
// hard failure on bad limits validate before constructing one.
func New(limit int) *Executor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Executor{
		limit:     limit,
		semaphore: make(chan struct{}, limit),
	}
}

// Limit returns the configured concurrency limit.
func (e *Executor) Limit() int {
	return e.limit
}

// Run invokes work for every index in [0, n), keeping at most the
// configured limit in flight.
//
// On the first failure the remaining not-yet-started operations are
// cancelled and in-flight operations are allowed to settle; Run then
// returns that first error. No partial results are reported: either every
// index ran to completion or Run returns non-nil.
func (e *Executor) Run(ctx context.Context, n int, work func(ctx context.Context, index int) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			// Cancel not-yet-started work; in-flight operations settle on
			// their own before Run returns.
			cancel()
		}
		mu.Unlock()
	}

admission:
	for i := 0; i < n; i++ {
		// Acquire semaphore
		select {
		case e.semaphore <- struct{}{}:
		case <-runCtx.Done():
			break admission
		}

		wg.Add(1)
		go func(index int) {
			defer func() {
				// Release semaphore
				<-e.semaphore
				wg.Done()
			}()

			if runCtx.Err() != nil {
				return
			}

			if err := work(runCtx, index); err != nil {
				record(err)
			}
		}(i)
	}

	// Full barrier: every admitted operation settles before results are read.
	wg.Wait()

	mu.Lock()
	err := firstErr
	mu.Unlock()
	if err != nil {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("cancelled before all chunks were scheduled: %w", ctxErr)
	}
	return nil
}
