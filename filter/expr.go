package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[string, CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Record fields vary by entry kind, so undefined names resolve to nil
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether record matches. Records that fail evaluation never match.
func (f *exprFilter) Evaluate(record Record) bool {
	ok, err := f.Run(record)
	return err == nil && ok
}

// Run evaluates the filter and reports evaluation failures
func (f *exprFilter) Run(record Record) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(f.helpers, record))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Title: record.Title(), Err: err}
	}
	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 32)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	env["yearOf"] = yearOf
	// String helpers. contains, startsWith and endsWith are operators in expr
	// and stay case-sensitive; these fold case and accents.
	env["includes"] = func(str, substr string) bool {
		return strings.Contains(foldText(str), foldText(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(foldText(str), foldText(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(foldText(str), foldText(suffix))
	}
	env["similarity"] = similarity
	env["fuzzy"] = func(str, pattern string) bool {
		return fuzzy.MatchFold(foldText(pattern), foldText(str))
	}
	env["fold"] = foldText
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
	// Record helpers, rebound per record at runtime
	env["hasGenre"] = func(string) bool { return false }
	env["hasStudio"] = func(string) bool { return false }
	env["appearsIn"] = func(string) bool { return false }
}

// createRuntimeEnvironment merges helpers, record fields and per-record closures
func createRuntimeEnvironment(helpers map[string]any, record Record) map[string]any {
	env := make(map[string]any, len(helpers)+len(record)+4)
	maps.Copy(env, helpers)
	maps.Copy(env, record)

	env["hasGenre"] = createHasNameFunc(record["Genres"])
	env["hasStudio"] = createHasNameFunc(record["Studios"])
	env["appearsIn"] = createAppearsInFunc(record["Animeography"], record["Mangaography"])

	return env
}

func createHasNameFunc(value any) func(string) bool {
	names, _ := value.([]string)
	lower := make([]string, len(names))
	for i, n := range names {
		lower[i] = strings.ToLower(n)
	}
	return func(name string) bool {
		return slices.Contains(lower, strings.ToLower(name))
	}
}

func createAppearsInFunc(lists ...any) func(string) bool {
	var titles []string
	for _, l := range lists {
		names, _ := l.([]string)
		titles = append(titles, names...)
	}
	return func(title string) bool {
		for _, t := range titles {
			if strings.Contains(strings.ToLower(t), strings.ToLower(title)) {
				return true
			}
		}
		return false
	}
}
