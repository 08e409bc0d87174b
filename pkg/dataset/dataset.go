package dataset

import (
	"maps"
	"slices"
)

// Entry is a single configuration value.
type Entry struct {
	Path  string
	Value string
}

// ScopeConfig holds the configuration values of one scope, ordered by path.
type ScopeConfig struct {
	Scope   Scope
	entries []Entry
	index   map[string]int
}

// Entries returns the scope entries in ascending path order.
func (s *ScopeConfig) Entries() []Entry {
	if s == nil {
		return nil
	}

	return slices.Clone(s.entries)
}

// Get returns the value stored for path and whether it is present.
func (s *ScopeConfig) Get(path string) (string, bool) {
	if s == nil {
		return "", false
	}

	i, ok := s.index[path]
	if !ok {
		return "", false
	}

	return s.entries[i].Value, true
}

// Len returns the number of entries in the scope.
func (s *ScopeConfig) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// Dataset is an immutable, ordered collection of scopes.
type Dataset struct {
	scopes []*ScopeConfig
	index  map[string]int
}

// Scopes returns the scopes in the order they first appeared in the source.
func (d *Dataset) Scopes() []*ScopeConfig {
	if d == nil {
		return nil
	}

	return slices.Clone(d.scopes)
}

// Scope looks up a scope by its raw key.
func (d *Dataset) Scope(key string) (*ScopeConfig, bool) {
	if d == nil {
		return nil, false
	}

	i, ok := d.index[key]
	if !ok {
		return nil, false
	}

	return d.scopes[i], true
}

// ScopeCount returns the number of scopes.
func (d *Dataset) ScopeCount() int {
	if d == nil {
		return 0
	}

	return len(d.scopes)
}

// EntryCount returns the number of entries across all scopes.
func (d *Dataset) EntryCount() int {
	total := 0
	for _, scope := range d.Scopes() {
		total += scope.Len()
	}

	return total
}

// Builder assembles a Dataset. The zero value is not usable; call NewBuilder.
type Builder struct {
	order  []string
	values map[string]map[string]string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{values: make(map[string]map[string]string)}
}

// Set records value for path in the given scope. Setting the same scope and path
// twice keeps the last value.
func (b *Builder) Set(scopeKey, path, value string) *Builder {
	b.AddScope(scopeKey)
	b.values[scopeKey][path] = value

	return b
}

// Build returns the dataset. Scopes keep their first-appearance order; paths are
// sorted ascending inside every scope.
func (b *Builder) Build() *Dataset {
	result := &Dataset{
		scopes: make([]*ScopeConfig, 0, len(b.order)),
		index:  make(map[string]int, len(b.order)),
	}

	for _, key := range b.order {
		paths := b.values[key]
		sortedPaths := slices.Sorted(maps.Keys(paths))

		scope := &ScopeConfig{
			Scope:   ParseScope(key),
			entries: make([]Entry, 0, len(sortedPaths)),
			index:   make(map[string]int, len(sortedPaths)),
		}

		for i, path := range sortedPaths {
			scope.entries = append(scope.entries, Entry{Path: path, Value: paths[path]})
			scope.index[path] = i
		}

		result.index[key] = len(result.scopes)
		result.scopes = append(result.scopes, scope)
	}

	return result
}

// FromMap builds a dataset from nested maps. Scope keys are ordered ascending,
// which keeps the result deterministic.
func FromMap(values map[string]map[string]string) *Dataset {
	builder := NewBuilder()

	for _, key := range slices.Sorted(maps.Keys(values)) {
		builder.AddScope(key)

		for path, value := range values[key] {
			builder.Set(key, path, value)
		}
	}

	return builder.Build()
}

// AddScope registers a scope without entries. It is a no-op for known scopes.
func (b *Builder) AddScope(key string) *Builder {
	if _, ok := b.values[key]; ok {
		return b
	}

	b.values[key] = make(map[string]string)
	b.order = append(b.order, key)

	return b
}
