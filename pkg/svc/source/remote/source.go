package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/io/wire"
	"github.com/scandiweb/configdiff/pkg/svc/source"
	"github.com/scandiweb/configdiff/pkg/svc/source/shim"
)

// Source reads core_config_data from a remote installation through an open
// session.
type Source struct {
	session Session
	dir     string
	php     string
}

// NewSource returns a Source running the dump shim with php inside dir.
func NewSource(session Session, dir, php string) *Source {
	return &Source{session: session, dir: dir, php: php}
}

// Fetch runs the dump shim and decodes its output.
func (s *Source) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	output, err := s.session.Run(ctx, shim.RemoteCommand(s.dir, s.php))
	if err != nil {
		if errors.Is(err, source.ErrTransport) {
			return nil, fmt.Errorf("retrieve remote configuration: %w", err)
		}

		return nil, fmt.Errorf("%w: retrieve remote configuration: %w", source.ErrTransport, err)
	}

	data, err := wire.Decode(bytes.NewReader(output))
	if err != nil {
		return nil, fmt.Errorf("%w: remote configuration: %w", source.ErrDeserialization, err)
	}

	return data, nil
}
