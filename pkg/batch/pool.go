// Package batch implements a bounded worker pool for running independent
// solves concurrently, adapted from pkg/jobs.Queue: that queue is
// fire-and-forget with its own retry/backoff loop, built for background
// task dispatch, whereas /solve/batch needs blocking submit-many/
// collect-all-results semantics with no retries (a failed solve in the
// batch is reported back to the caller, not silently retried). The
// worker/channel/WaitGroup shape is kept; the job-retry machinery is
// dropped (SPEC_FULL.md §5).
package batch

import (
	"context"
	"sync"
)

// Task is one unit of work submitted to the pool. It receives the context
// passed to Run and must not share mutable state with other tasks.
type Task func(ctx context.Context) (interface{}, error)

// Result pairs a task's index (matching submission order) with its
// outcome.
type Result struct {
	Index int
	Value interface{}
	Err   error
}

// Pool runs submitted tasks across a fixed number of goroutines, each
// task's solve getting its own domain.RuntimeState so concurrent solves
// never share mutable search state (spec §5's "nothing shared across
// workers").
type Pool struct {
	workers int
}

// NewPool builds a pool with the given worker count, clamped to at
// least 1.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run submits tasks to the pool and blocks until every task has
// completed or ctx is canceled, returning one Result per task in
// submission order.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	type indexed struct {
		index int
		task  Task
	}

	jobs := make(chan indexed)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				value, err := job.task(ctx)
				results[job.index] = Result{Index: job.index, Value: value, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, t := range tasks {
			select {
			case jobs <- indexed{index: i, task: t}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	for i := range results {
		if results[i].Err == nil && results[i].Value == nil && ctx.Err() != nil {
			results[i].Err = ctx.Err()
		}
	}

	return results
}
