package cmd

import (
	"errors"

	"github.com/scandiweb/configdiff/pkg/cli/ui/prompt"
	"github.com/scandiweb/configdiff/pkg/io/configmanager"
	"github.com/scandiweb/configdiff/pkg/svc/source"
	"github.com/scandiweb/configdiff/pkg/svc/source/local"
	"github.com/scandiweb/configdiff/pkg/svc/source/remote"
)

// Process exit codes.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidInput    = 2
	ExitTransport       = 3
	ExitDeserialization = 4
)

// ErrDifferencesFound is returned by diff with --fail-on-diff when at least
// one scope differs.
var ErrDifferencesFound = errors.New("configuration differences found")

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, remote.ErrInvalidTarget),
		errors.Is(err, configmanager.ErrInvalidConfig),
		errors.Is(err, local.ErrInvalidOptions),
		errors.Is(err, source.ErrUnknownKind),
		errors.Is(err, ErrInvalidFormat),
		errors.Is(err, prompt.ErrNoTerminal):
		return ExitInvalidInput
	case errors.Is(err, source.ErrDeserialization):
		return ExitDeserialization
	case errors.Is(err, source.ErrTransport):
		return ExitTransport
	default:
		return ExitFailure
	}
}
