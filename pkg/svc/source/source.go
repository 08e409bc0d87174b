// Package source defines how configuration datasets are retrieved.
//
// Implementations live in the remote (SSH) and local (exec, file, sqlite)
// subpackages. Every implementation reports failures wrapped in one of the
// sentinel errors below so callers can tell them apart with errors.Is.
package source

import (
	"context"
	"errors"

	"github.com/scandiweb/configdiff/pkg/dataset"
)

var (
	// ErrTransport is wrapped by failures to reach or run against an installation.
	ErrTransport = errors.New("transport error")
	// ErrDeserialization is wrapped by failures to decode retrieved data.
	ErrDeserialization = errors.New("deserialization error")
	// ErrUnknownKind is returned when a source kind is not recognised.
	ErrUnknownKind = errors.New("unknown source kind")
)

// Source retrieves a configuration dataset.
type Source interface {
	Fetch(ctx context.Context) (*dataset.Dataset, error)
}

// Func adapts a function to the Source interface.
type Func func(ctx context.Context) (*dataset.Dataset, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	return f(ctx)
}
