// Package diff provides an Engine that compares a local and a remote configuration
// dataset scope by scope.
//
// For every scope present in both datasets the engine produces a [ScopeReport]
// holding one [Row] per path whose value differs: paths changed or missing on the
// remote side come first in ascending path order, followed by paths that only
// exist on the remote side. Scopes missing from the remote dataset are skipped,
// and so are scopes that only exist remotely.
package diff
