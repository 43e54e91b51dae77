// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// ErrorFunc is called when a file processing error occurs.
// If nil, errors are silently skipped.
type ErrorFunc func(path string, err error)

// ForEachFile processes files in parallel, calling fn for each file.
// Results are collected in arbitrary order; individual errors are skipped.
func ForEachFile[T any](files []string, fn func(string) (T, error)) []T {
	return ForEachFileN(files, 0, fn, nil, nil)
}

// ForEachFileN processes files with configurable worker count and callbacks.
// If maxWorkers is <= 0, defaults to 2x NumCPU.
func ForEachFileN[T any](files []string, maxWorkers int, fn func(string) (T, error), onProgress ProgressFunc, onError ErrorFunc) []T {
	if len(files) == 0 {
		return nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range files {
		p.Go(func() {
			result, err := fn(path)

			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				if onProgress != nil {
					onProgress()
				}
				return
			}

			if onProgress != nil {
				onProgress()
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}

// MapFiles processes files in parallel and returns results aligned with the
// input order. A file whose fn fails keeps the zero value at its slot.
func MapFiles[T any](files []string, fn func(string) (T, error)) []T {
	if len(files) == 0 {
		return nil
	}

	results := make([]T, len(files))

	p := pool.New().WithMaxGoroutines(runtime.NumCPU() * DefaultWorkerMultiplier)
	for i, path := range files {
		p.Go(func() {
			if value, err := fn(path); err == nil {
				results[i] = value
			}
		})
	}
	p.Wait()

	return results
}

// BatchResult pairs a file path with its processing output.
type BatchResult[T any] struct {
	Path  string
	Value T
	Err   error
}

// InBatches processes files in FIFO batches of batchSize. All files in a
// batch start together and the whole batch is awaited before the next one
// begins, bounding concurrent resource usage. Per-file failures are recorded
// in the result, not propagated; a cancelled context stops scheduling new
// batches and returns ctx.Err().
func InBatches[T any](ctx context.Context, files []string, batchSize int, fn func(ctx context.Context, path string) (T, error)) ([]BatchResult[T], error) {
	if batchSize <= 0 {
		batchSize = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]BatchResult[T], 0, len(files))
	var mu sync.Mutex

	for start := 0; start < len(files); start += batchSize {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		end := min(start+batchSize, len(files))

		p := pool.New().WithMaxGoroutines(end - start)
		for _, path := range files[start:end] {
			p.Go(func() {
				value, err := fn(ctx, path)
				mu.Lock()
				results = append(results, BatchResult[T]{Path: path, Value: value, Err: err})
				mu.Unlock()
			})
		}
		p.Wait()
	}

	return results, nil
}
