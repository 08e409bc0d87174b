package local

import (
	"errors"
	"fmt"

	"github.com/scandiweb/configdiff/pkg/svc/source"
	"github.com/scandiweb/configdiff/pkg/utils/runner"
)

// Kind names a local source implementation.
type Kind string

const (
	// KindExec runs the dump shim with the local PHP interpreter.
	KindExec Kind = "exec"
	// KindFile reads a YAML snapshot.
	KindFile Kind = "file"
	// KindSQLite reads an SQLite database.
	KindSQLite Kind = "sqlite"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{KindExec, KindFile, KindSQLite}
}

// ErrInvalidOptions is returned when the options cannot describe a usable source.
var ErrInvalidOptions = errors.New("invalid local source options")

// Options selects and configures a local source.
type Options struct {
	Kind        Kind
	Path        string
	PHP         string
	File        string
	TablePrefix string
	Runner      runner.CommandRunner
}

// Factory builds a local source from options.
type Factory func(opts Options) (source.Source, error)

// NewFactory returns the factory used by the CLI.
func NewFactory() Factory {
	return New
}

// New builds the source selected by opts.Kind.
func New(opts Options) (source.Source, error) {
	switch opts.Kind {
	case KindExec, "":
		commandRunner := opts.Runner
		if commandRunner == nil {
			commandRunner = runner.NewExecCommandRunner()
		}

		return NewExecSource(commandRunner, opts.Path, opts.PHP), nil
	case KindFile:
		if opts.File == "" {
			return nil, fmt.Errorf("%w: the file source needs a snapshot path", ErrInvalidOptions)
		}

		return NewFileSource(opts.File), nil
	case KindSQLite:
		if opts.File == "" {
			return nil, fmt.Errorf("%w: the sqlite source needs a database path", ErrInvalidOptions)
		}

		return NewSQLiteSource(opts.File, opts.TablePrefix), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %v)", source.ErrUnknownKind, opts.Kind, Kinds())
	}
}
