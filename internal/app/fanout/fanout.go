// Package fanout runs one function over many items on a fixed pool of
// workers and reports each outcome at the item's input index.
package fanout

import (
	"context"
	"errors"
	"sync"
)

// Result is the outcome for one item. Err is set when fn failed or the
// item was never started because ctx ended first.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for every item using at most workers goroutines and returns
// the results in input order. Items not yet picked up when ctx is done get
// ctx.Err() without fn being called; calls already running finish normally.
// A workers value below 1 is treated as 1. Run always returns a non-nil
// slice.
func Run[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}
	workers = min(max(workers, 1), len(items))

	next := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range next {
				val, err := fn(ctx, items[i])
				results[i] = Result[R]{Value: val, Err: err}
			}
		})
	}

	for i := range items {
		if ctx.Err() != nil {
			results[i] = Result[R]{Err: ctx.Err()}
			continue
		}
		select {
		case next <- i:
		case <-ctx.Done():
			results[i] = Result[R]{Err: ctx.Err()}
		}
	}
	close(next)
	wg.Wait()
	return results
}

// Join collects every failed result into one error, or nil.
func Join[R any](results []Result[R]) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
