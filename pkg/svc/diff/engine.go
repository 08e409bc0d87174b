package diff

import (
	"github.com/scandiweb/configdiff/pkg/dataset"
	"golang.org/x/sync/errgroup"
)

// Engine computes configuration differences between two datasets.
type Engine struct {
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many scopes are compared concurrently. Values below one are
// treated as one.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		e.workers = max(workers, 1)
	}
}

// NewEngine creates a new diff engine. By default scopes are compared sequentially.
func NewEngine(opts ...Option) *Engine {
	engine := &Engine{workers: 1}
	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// scopePair couples a local scope with its remote counterpart.
type scopePair struct {
	local  *dataset.ScopeConfig
	remote *dataset.ScopeConfig
}

// ComputeDiff compares local against remote. Only scopes that exist in both
// datasets produce a report; reports follow the scope order of local.
func (e *Engine) ComputeDiff(local, remote *dataset.Dataset) *Result {
	pairs := make([]scopePair, 0, local.ScopeCount())

	for _, localScope := range local.Scopes() {
		remoteScope, ok := remote.Scope(localScope.Scope.Key)
		if !ok {
			continue
		}

		pairs = append(pairs, scopePair{local: localScope, remote: remoteScope})
	}

	reports := make([]ScopeReport, len(pairs))

	if e.workers <= 1 || len(pairs) <= 1 {
		for i, pair := range pairs {
			reports[i] = DiffScope(pair.local, pair.remote)
		}

		return &Result{Reports: reports}
	}

	var group errgroup.Group

	group.SetLimit(e.workers)

	for i, pair := range pairs {
		group.Go(func() error {
			reports[i] = DiffScope(pair.local, pair.remote)

			return nil
		})
	}

	// Scope comparisons cannot fail.
	_ = group.Wait()

	return &Result{Reports: reports}
}

// DiffScope compares a single scope. Rows for local paths come first in ascending
// path order, followed by paths that only exist remotely in remote order.
func DiffScope(local, remote *dataset.ScopeConfig) ScopeReport {
	report := ScopeReport{}
	if local != nil {
		report.Scope = local.Scope
	} else if remote != nil {
		report.Scope = remote.Scope
	}

	for _, entry := range local.Entries() {
		remoteValue, ok := remote.Get(entry.Path)

		switch {
		case !ok:
			report.Rows = append(report.Rows, Row{
				Path:   entry.Path,
				Local:  Present(entry.Value),
				Remote: Absent,
			})
		case remoteValue != entry.Value:
			report.Rows = append(report.Rows, Row{
				Path:   entry.Path,
				Local:  Present(entry.Value),
				Remote: Present(remoteValue),
			})
		}
	}

	for _, entry := range remote.Entries() {
		if _, ok := local.Get(entry.Path); ok {
			continue
		}

		report.Rows = append(report.Rows, Row{
			Path:   entry.Path,
			Local:  Absent,
			Remote: Present(entry.Value),
		})
	}

	return report
}
