package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Manager holds named preset filters and the evaluator they run on
type Manager struct {
	compiler  Compiler
	evaluator BatchEvaluator

	mu      sync.RWMutex
	presets map[string]CompiledFilter
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithEvaluator replaces the default ConcurrentEvaluator
func WithEvaluator(evaluator BatchEvaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a manager compiling with the shared caching compiler
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: defaultCompiler,
		presets:  make(map[string]CompiledFilter),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.evaluator == nil {
		m.evaluator = NewConcurrentEvaluator()
	}
	return m
}

// RegisterFilter compiles expression and stores it as name, replacing any previous preset
func (m *Manager) RegisterFilter(name, expression string) error {
	return m.RegisterFilters(map[string]string{name: expression})
}

// RegisterFilters compiles every preset before storing any, so one bad
// expression leaves the manager unchanged. Names are compiled in sorted order.
func (m *Manager) RegisterFilters(presets map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(presets))
	for _, name := range slices.Sorted(maps.Keys(presets)) {
		f, err := m.compiler.Compile(presets[name])
		if err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()
	return nil
}

// UnregisterFilter drops a preset
func (m *Manager) UnregisterFilter(name string) {
	m.mu.Lock()
	delete(m.presets, name)
	m.mu.Unlock()
}

// GetFilter looks up a preset by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.presets[name]
	return f, ok
}

// ListFilters returns the preset names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.presets))
}

// Evaluator exposes the evaluator for ad-hoc filters
func (m *Manager) Evaluator() Evaluator {
	return m.evaluator
}

// lookup resolves names to presets, failing on the first unknown one
func (m *Manager) lookup(names []string) (map[string]CompiledFilter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	selected := make(map[string]CompiledFilter, len(names))
	for _, name := range names {
		f, ok := m.presets[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrFilterNotFound, name)
		}
		selected[name] = f
	}
	return selected, nil
}

// EvaluateFilter returns the indexes of records matching one preset
func (m *Manager) EvaluateFilter(ctx context.Context, name string, records []Record) ([]int, error) {
	selected, err := m.lookup([]string{name})
	if err != nil {
		return nil, err
	}
	return m.evaluator.Evaluate(ctx, selected[name], records)
}

// EvaluateSelected runs the named presets concurrently and returns each one's matches
func (m *Manager) EvaluateSelected(ctx context.Context, names []string, records []Record) (map[string][]int, error) {
	selected, err := m.lookup(names)
	if err != nil {
		return nil, err
	}
	return m.evaluator.EvaluateBatch(ctx, selected, records)
}

// Close stops the evaluator's workers
func (m *Manager) Close(ctx context.Context) error {
	return m.evaluator.Stop(ctx)
}

// ApplyPresets keeps the items that match every named preset, in their original order
func ApplyPresets[T any](ctx context.Context, m *Manager, names []string, items []T) ([]T, error) {
	names = lo.Uniq(names)
	if len(names) == 0 {
		return items, nil
	}

	records, err := recordsOf(items)
	if err != nil {
		return nil, err
	}

	var indexes []int
	if len(names) == 1 {
		if indexes, err = m.EvaluateFilter(ctx, names[0], records); err != nil {
			return nil, err
		}
	} else {
		results, err := m.EvaluateSelected(ctx, names, records)
		if err != nil {
			return nil, err
		}
		hits := make(map[int]int, len(items))
		for _, matches := range results {
			for _, idx := range matches {
				hits[idx]++
			}
		}
		for idx, n := range hits {
			if n == len(names) {
				indexes = append(indexes, idx)
			}
		}
		slices.Sort(indexes)
	}

	return lo.Map(indexes, func(idx int, _ int) T { return items[idx] }), nil
}
