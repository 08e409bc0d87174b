package di

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/scandiweb/configdiff/pkg/cli/ui/prompt"
	"github.com/scandiweb/configdiff/pkg/svc/source/local"
	"github.com/scandiweb/configdiff/pkg/svc/source/remote"
)

// ResolveConsole retrieves the Console.
func ResolveConsole(injector Injector) (*Console, error) {
	console, err := do.Invoke[*Console](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve console dependency: %w", err)
	}

	return console, nil
}

// ResolveDialerFactory retrieves the SSH dialer factory.
func ResolveDialerFactory(injector Injector) (remote.DialerFactory, error) {
	factory, err := do.Invoke[remote.DialerFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve dialer factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveLocalFactory retrieves the local source factory.
func ResolveLocalFactory(injector Injector) (local.Factory, error) {
	factory, err := do.Invoke[local.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve local source factory dependency: %w", err)
	}

	return factory, nil
}

// ResolvePasswordReader retrieves the password reader.
func ResolvePasswordReader(injector Injector) (prompt.PasswordReader, error) {
	reader, err := do.Invoke[prompt.PasswordReader](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve password reader dependency: %w", err)
	}

	return reader, nil
}
