// Package di wires configdiff's services together with samber/do.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the container handed to modules and handlers.
type Injector = do.Injector

// Runtime builds a fresh injector for every invocation from a fixed set of
// modules.
type Runtime struct {
	modules []func(Injector) error
}

// New creates a Runtime from modules. Nil modules are ignored.
func New(modules ...func(Injector) error) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke registers the base modules followed by extraModules on a new injector,
// then calls handler. The first module error is returned as is.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...func(Injector) error) error {
	injector := do.New()

	for _, module := range append(append([]func(Injector) error{}, r.modules...), extraModules...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler needing an injector to cobra's RunE.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
