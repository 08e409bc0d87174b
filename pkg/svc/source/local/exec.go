package local

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/io/wire"
	"github.com/scandiweb/configdiff/pkg/svc/source"
	"github.com/scandiweb/configdiff/pkg/svc/source/shim"
	"github.com/scandiweb/configdiff/pkg/utils/runner"
)

// ExecSource runs the dump shim with a local PHP interpreter.
type ExecSource struct {
	runner runner.CommandRunner
	dir    string
	php    string
}

// NewExecSource creates an ExecSource running php inside dir.
func NewExecSource(commandRunner runner.CommandRunner, dir, php string) *ExecSource {
	if php == "" {
		php = shim.DefaultPHP
	}

	return &ExecSource{runner: commandRunner, dir: dir, php: php}
}

// Fetch runs the shim and decodes its output.
func (s *ExecSource) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	result, err := s.runner.Run(ctx, s.dir, s.php, "-r", shim.Script())
	if err != nil {
		detail := strings.TrimSpace(string(result.Stderr))
		if detail != "" {
			return nil, fmt.Errorf("%w: local dump in %s: %w: %s", source.ErrTransport, s.dir, err, detail)
		}

		return nil, fmt.Errorf("%w: local dump in %s: %w", source.ErrTransport, s.dir, err)
	}

	data, err := wire.Decode(bytes.NewReader(result.Stdout))
	if err != nil {
		return nil, fmt.Errorf("%w: local configuration: %w", source.ErrDeserialization, err)
	}

	return data, nil
}
