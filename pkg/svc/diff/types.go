package diff

import "github.com/scandiweb/configdiff/pkg/dataset"

// Value is an optional configuration value. The zero value is absent, which is
// distinct from a present empty string.
type Value struct {
	value   string
	present bool
}

// Absent is the value used for a path that does not exist on one side.
//
//nolint:gochecknoglobals // immutable sentinel
var Absent = Value{}

// Present wraps an existing value.
func Present(value string) Value {
	return Value{value: value, present: true}
}

// Get returns the wrapped value and whether it is present.
func (v Value) Get() (string, bool) {
	return v.value, v.present
}

// IsPresent reports whether the value exists.
func (v Value) IsPresent() bool {
	return v.present
}

// Row is a single differing configuration path.
type Row struct {
	Path   string
	Local  Value
	Remote Value
}

// ScopeReport holds the differing rows of a single scope.
type ScopeReport struct {
	Scope dataset.Scope
	Rows  []Row
}

// Identical reports whether the scope has no differences.
func (r ScopeReport) Identical() bool {
	return len(r.Rows) == 0
}

// Result is the outcome of comparing two datasets.
type Result struct {
	// Reports are ordered like the scopes of the local dataset.
	Reports []ScopeReport
}

// TotalRows returns the number of differing paths across all scopes.
func (r *Result) TotalRows() int {
	if r == nil {
		return 0
	}

	total := 0
	for _, report := range r.Reports {
		total += len(report.Rows)
	}

	return total
}

// DifferingScopes returns how many compared scopes have at least one row.
func (r *Result) DifferingScopes() int {
	if r == nil {
		return 0
	}

	count := 0

	for _, report := range r.Reports {
		if !report.Identical() {
			count++
		}
	}

	return count
}

// HasDifferences reports whether any compared scope differs.
func (r *Result) HasDifferences() bool {
	return r.TotalRows() > 0
}

// Report returns the report of the scope with the given raw key.
func (r *Result) Report(key string) (ScopeReport, bool) {
	if r == nil {
		return ScopeReport{}, false
	}

	for _, report := range r.Reports {
		if report.Scope.Key == key {
			return report, true
		}
	}

	return ScopeReport{}, false
}
