package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/io/snapshot"
	"github.com/scandiweb/configdiff/pkg/svc/source"
)

// FileSource reads a snapshot file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the snapshot.
func (s *FileSource) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	data, err := snapshot.ReadFile(s.path)

	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, snapshot.ErrInvalidSnapshot):
		return nil, fmt.Errorf("%w: %w", source.ErrDeserialization, err)
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, snapshot.ErrEmptyPath):
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	default:
		return nil, fmt.Errorf("%w: %w", source.ErrTransport, err)
	}
}
