package filter

import (
	"context"
)

// CompiledFilter is an expression ready to be evaluated against records
type CompiledFilter interface {
	// Evaluate reports whether record matches
	Evaluate(record Record) bool

	// Expression returns the source the filter was compiled from
	Expression() string
}

// Compiler turns expression source into a CompiledFilter
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler is a Compiler that keeps compiled programs
type CachingCompiler interface {
	Compiler
	Clear()
	Size() int
}

// Evaluator runs one filter over records.
// Matches are reported as indexes into records, in ascending order.
type Evaluator interface {
	Evaluate(ctx context.Context, filter CompiledFilter, records []Record) ([]int, error)
}

// BatchEvaluator also runs several filters over the same records at once,
// keyed by filter name, and owns workers that Stop releases.
type BatchEvaluator interface {
	Evaluator
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, records []Record) (map[string][]int, error)
	Stop(ctx context.Context) error
}

// WorkerPool runs submitted work on a fixed set of goroutines
type WorkerPool interface {
	// Submit blocks until a worker accepts work, ctx is done or the pool stops
	Submit(ctx context.Context, work func()) error

	// Stop waits for accepted work to finish
	Stop(ctx context.Context) error
}
