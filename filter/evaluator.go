package filter

import (
	"context"
	"runtime"
	"sync"

	"github.com/samber/lo"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.workerCount = workers
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator is the BatchEvaluator backed by a worker pool
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
	pool        WorkerPool
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}
	if e.workerCount <= 0 {
		e.workerCount = 1
	}

	e.pool = NewWorkerPool(e.workerCount)

	return e
}

// Evaluate evaluates a single filter against all records
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, records []Record) ([]int, error) {
	if len(records) == 0 {
		return []int{}, nil
	}

	// Small lists are not worth the coordination
	if len(records) < e.batchSize {
		return evaluateRange(filter, records, 0), nil
	}

	return e.evaluateConcurrent(ctx, filter, records)
}

// batchResult carries one filter's matches out of the pool
type batchResult struct {
	name    string
	matches []int
	err     error
}

// EvaluateBatch evaluates multiple filters against records concurrently.
// Filters that fail are left out of the result.
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, records []Record) (map[string][]int, error) {
	results := make(map[string][]int, len(filters))
	if len(filters) == 0 || len(records) == 0 {
		return results, nil
	}

	resultChan := make(chan batchResult, len(filters))
	var wg sync.WaitGroup

	for name, filter := range filters {
		wg.Add(1)
		err := e.pool.Submit(ctx, func() {
			defer wg.Done()
			if ctx.Err() != nil {
				resultChan <- batchResult{name: name, err: ctx.Err()}
				return
			}
			// sequential per filter; the filters themselves run in parallel
			resultChan <- batchResult{name: name, matches: evaluateRange(filter, records, 0)}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		if result.err != nil {
			continue
		}
		results[result.name] = result.matches
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluateRange returns the indexes (offset by base) of records matching filter
func evaluateRange(filter CompiledFilter, records []Record, base int) []int {
	matches := make([]int, 0, len(records)/4)
	for i, record := range records {
		if filter.Evaluate(record) {
			matches = append(matches, base+i)
		}
	}
	return matches
}

// evaluateConcurrent evaluates chunks of records on the worker pool
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, records []Record) ([]int, error) {
	chunkSize := max(len(records)/e.workerCount, e.batchSize)
	chunks := lo.Chunk(lo.Range(len(records)), chunkSize)

	results := make([][]int, len(chunks))
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		start, end := chunk[0], chunk[len(chunk)-1]+1

		wg.Add(1)
		err := e.pool.Submit(ctx, func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			results[i] = evaluateRange(filter, records[start:end], start)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return lo.Flatten(results), nil
}

// Stop gracefully stops the evaluator's worker pool
func (e *ConcurrentEvaluator) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}

// Apply flattens items into records, evaluates filter and returns the matching items in order
func Apply[T any](ctx context.Context, evaluator Evaluator, filter CompiledFilter, items []T) ([]T, error) {
	records, err := recordsOf(items)
	if err != nil {
		return nil, err
	}

	indexes, err := evaluator.Evaluate(ctx, filter, records)
	if err != nil {
		return nil, err
	}

	return lo.Map(indexes, func(idx int, _ int) T { return items[idx] }), nil
}
