// Package performance serializes many independent values concurrently.
package performance

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Serializer is the single-value operation run for each batch item.
type Serializer interface {
	ToJSONContext(ctx context.Context, v any) (string, error)
}

// BatchOptions configures batch processing behavior
type BatchOptions struct {
	// MaxConcurrency limits the number of concurrent serializations (0 = number of CPUs)
	MaxConcurrency int

	// StopOnFirstError cancels the items not yet started after the first failure
	StopOnFirstError bool

	// ProgressCallback is called after each item is processed. Calls are
	// serialized.
	ProgressCallback func(processed, total int, err error)
}

// BatchResult contains the results of batch processing
type BatchResult struct {
	// Outputs holds one document per input, in input order. Failed or
	// skipped items leave an empty string.
	Outputs []string

	Processed int
	Failed    int
	Total     int

	// Errors is sorted by Index.
	Errors []BatchError

	Duration time.Duration
}

// BatchError represents an error that occurred during batch processing
type BatchError struct {
	Index int
	Item  any
	Error error
}

// SerializeBatch runs s on every value with bounded concurrency.
//
// Without StopOnFirstError every item is attempted and failures are only
// reported in the result. With it, the first failure cancels the rest and
// is returned. A cancelled ctx is always returned.
func SerializeBatch(ctx context.Context, s Serializer, values []any, options ...*BatchOptions) (*BatchResult, error) {
	result := &BatchResult{
		Outputs: make([]string, len(values)),
		Total:   len(values),
	}
	if len(values) == 0 {
		return result, nil
	}

	opts := BatchOptions{MaxConcurrency: runtime.NumCPU()}
	if len(options) > 0 && options[0] != nil {
		if options[0].MaxConcurrency > 0 {
			opts.MaxConcurrency = options[0].MaxConcurrency
		}
		opts.StopOnFirstError = options[0].StopOnFirstError
		opts.ProgressCallback = options[0].ProgressCallback
	}

	start := time.Now()

	g, batchCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrency)
	var mu sync.Mutex

	for i, item := range values {
		if batchCtx.Err() != nil {
			break
		}

		g.Go(func() error {
			// Cancelled before a worker was free.
			if batchCtx.Err() != nil {
				return nil
			}

			out, err := s.ToJSONContext(batchCtx, item)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, BatchError{Index: i, Item: item, Error: err})
			} else {
				result.Processed++
				result.Outputs[i] = out
			}

			if opts.ProgressCallback != nil {
				opts.ProgressCallback(result.Processed+result.Failed, result.Total, err)
			}

			if err != nil && opts.StopOnFirstError {
				return err
			}
			return nil
		})
	}

	waitErr := g.Wait()
	result.Duration = time.Since(start)
	slices.SortFunc(result.Errors, func(a, b BatchError) int { return a.Index - b.Index })

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if waitErr != nil {
		return result, waitErr
	}
	return result, nil
}
