package di

import (
	"io"
	"os"

	"github.com/samber/do/v2"
	"github.com/scandiweb/configdiff/pkg/cli/ui/prompt"
	"github.com/scandiweb/configdiff/pkg/svc/source/local"
	"github.com/scandiweb/configdiff/pkg/svc/source/remote"
)

// Console carries the writer used for prompts, warnings and diagnostic logs.
// It is kept apart from cobra's error stream, which the executor captures.
type Console struct {
	Err io.Writer
}

// NewRuntime constructs the runtime used by the CLI.
func NewRuntime() *Runtime {
	return New(
		ProvideConsole(os.Stderr),
		provideDialerFactory,
		provideLocalFactory,
		providePasswordReader,
	)
}

// ProvideConsole returns a module registering a Console writing to w.
func ProvideConsole(w io.Writer) func(Injector) error {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (*Console, error) {
			return &Console{Err: w}, nil
		})

		return nil
	}
}

// ProvideDialerFactory returns a module registering factory.
func ProvideDialerFactory(factory remote.DialerFactory) func(Injector) error {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (remote.DialerFactory, error) {
			return factory, nil
		})

		return nil
	}
}

// ProvideLocalFactory returns a module registering factory.
func ProvideLocalFactory(factory local.Factory) func(Injector) error {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (local.Factory, error) {
			return factory, nil
		})

		return nil
	}
}

// ProvidePasswordReader returns a module registering reader.
func ProvidePasswordReader(reader prompt.PasswordReader) func(Injector) error {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (prompt.PasswordReader, error) {
			return reader, nil
		})

		return nil
	}
}

func provideDialerFactory(i Injector) error {
	return ProvideDialerFactory(remote.NewDialerFactory())(i)
}

func provideLocalFactory(i Injector) error {
	return ProvideLocalFactory(local.NewFactory())(i)
}

func providePasswordReader(i Injector) error {
	return ProvidePasswordReader(prompt.ReadPassword)(i)
}
