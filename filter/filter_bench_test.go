package filter

import (
	"context"
	"testing"
)

// Benchmark filter compilation
func BenchmarkCompileFilter(b *testing.B) {
	expressions := []struct {
		name string
		expr string
	}{
		{"simple", `hasGenre("Action")`},
		{"complex", `hasGenre("Action") and HasScore and Score > 7.0 and Members > 5000`},
	}

	for _, tc := range expressions {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, err := NewExprCompiler().Compile(tc.expr)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Benchmark filter compilation with caching
func BenchmarkCompileFilterWithCache(b *testing.B) {
	compiler := NewExprCompiler(WithCache(100))
	expression := `hasGenre("Action") and Score > 7.0`

	b.ReportAllocs()
	for b.Loop() {
		if _, err := compiler.Compile(expression); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark single filter evaluation
func BenchmarkEvaluateFilter(b *testing.B) {
	records := generateTestRecords(1000)
	filter, _ := CompileFilter(`hasGenre("Action") and Score > 7.0`)

	b.ReportAllocs()
	for b.Loop() {
		_ = evaluateRange(filter, records, 0)
	}
}

// Benchmark concurrent evaluation
func BenchmarkEvaluateConcurrent(b *testing.B) {
	records := generateTestRecords(10000)
	filter, _ := CompileFilter(`hasGenre("Action") and Score > 7.0`)
	ctx := context.Background()

	evaluators := []struct {
		name      string
		evaluator *ConcurrentEvaluator
	}{
		{"workers-1", NewConcurrentEvaluator(WithWorkers(1))},
		{"workers-4", NewConcurrentEvaluator(WithWorkers(4))},
		{"workers-8", NewConcurrentEvaluator(WithWorkers(8))},
		{"workers-default", NewConcurrentEvaluator()},
	}

	for _, tc := range evaluators {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := tc.evaluator.Evaluate(ctx, filter, records); err != nil {
					b.Fatal(err)
				}
			}
		})
		tc.evaluator.Stop(ctx)
	}
}

// Benchmark batch evaluation
func BenchmarkEvaluateBatch(b *testing.B) {
	records := generateTestRecords(5000)
	filters := map[string]string{
		"action":    `hasGenre("Action")`,
		"tv":        `Type == "TV"`,
		"highRated": `Score > 8.0`,
		"popular":   `Members > 2500000`,
		"complex":   `hasGenre("Drama") and Type == "Movie" and HasScore`,
	}

	compiled := make(map[string]CompiledFilter)
	for name, expr := range filters {
		filter, _ := CompileFilter(expr)
		compiled[name] = filter
	}

	ctx := context.Background()
	evaluator := NewConcurrentEvaluator()
	defer evaluator.Stop(ctx)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := evaluator.EvaluateBatch(ctx, compiled, records); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark helper function performance
func BenchmarkHelperFunctions(b *testing.B) {
	record := Record{
		"Genres":       []string{"Action", "Drama", "Thriller"},
		"Animeography": []string{"Code Geass", "Code Geass R2"},
	}

	b.Run("hasGenre", func(b *testing.B) {
		hasGenre := createHasNameFunc(record["Genres"])
		b.ReportAllocs()
		for b.Loop() {
			_ = hasGenre("action")
		}
	})

	b.Run("appearsIn", func(b *testing.B) {
		appearsIn := createAppearsInFunc(record["Animeography"], record["Mangaography"])
		b.ReportAllocs()
		for b.Loop() {
			_ = appearsIn("r2")
		}
	})

	b.Run("environment", func(b *testing.B) {
		helpers := createHelperFunctions()
		b.ReportAllocs()
		for b.Loop() {
			_ = createRuntimeEnvironment(helpers, record)
		}
	})
}
