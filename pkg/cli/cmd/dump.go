package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/di"
	"github.com/scandiweb/configdiff/pkg/io/configmanager"
	"github.com/scandiweb/configdiff/pkg/io/snapshot"
	"github.com/scandiweb/configdiff/pkg/io/wire"
	"github.com/scandiweb/configdiff/pkg/svc/source"
	"github.com/scandiweb/configdiff/pkg/svc/source/remote"
	"github.com/scandiweb/configdiff/pkg/utils/logging"
	"github.com/scandiweb/configdiff/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// Dump output formats.
const (
	FormatYAML = "yaml"
	FormatWire = "wire"
)

// ErrInvalidFormat is returned for an unknown --format value.
var ErrInvalidFormat = errors.New("invalid output format")

const dumpCmdLong = `Write the configuration of the local installation, or of a remote one when a
target is given, to stdout or a file.

The yaml format produces a snapshot that "configdiff diff --local-source file"
can compare against later. The wire format is the line-oriented stream the
dump snippet emits.`

const dumpCmdExample = `  # Snapshot production for later comparisons
  configdiff dump deploy@shop.example.com:/var/www/magento -o prod.yaml

  # Print the local configuration in the wire format
  configdiff dump --format wire`

// NewDumpCmd creates the dump command.
func NewDumpCmd(runtime *di.Runtime) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:          "dump [user@host[:port]:/path/to/magento/root]",
		Short:        "Write a configuration dataset as a YAML snapshot or wire stream",
		Long:         dumpCmdLong,
		Example:      dumpCmdExample,
		Args:         remoteTargetArgs(0, 1),
		SilenceUsage: true,
	}

	manager := configmanager.NewCommandConfigManager(cmd, nil)
	manager.AddSourceFlags()

	cmd.Flags().StringVar(&format, "format", FormatYAML, "output format: yaml or wire")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector di.Injector) error {
			deps, err := resolveDeps(injector)
			if err != nil {
				return err
			}

			rawTarget := ""
			if len(args) > 0 {
				rawTarget = args[0]
			}

			return runDump(cmd, rawTarget, format, output, manager, deps)
		})
	}

	return cmd
}

func runDump(
	cmd *cobra.Command,
	rawTarget, format, output string,
	manager *configmanager.ConfigManager,
	deps *commandDeps,
) error {
	dumper, err := formatFor(format)
	if err != nil {
		return err
	}

	manager.Writer = deps.console.Err

	config, err := manager.Load()
	if err != nil {
		return err
	}

	logger := logging.New(deps.console.Err, config.Verbose)
	ctx := cmd.Context()

	var src source.Source

	if rawTarget == "" {
		notify.Titlef(deps.console.Err, "📦", "Dumping the local configuration")

		src, err = deps.localFactory(localOptions(config))
		if err != nil {
			return err
		}
	} else {
		target, parseErr := remote.ParseTarget(rawTarget)
		if parseErr != nil {
			return parseErr
		}

		remoteSource, session, openErr := openRemote(ctx, target, config, deps, logger)
		if openErr != nil {
			return openErr
		}

		defer closeSession(session, logger)

		notify.Titlef(deps.console.Err, "📦", "Dumping the configuration of %s", target)

		src = remoteSource
	}

	data, err := src.Fetch(ctx)
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		return dumper.encode(cmd.OutOrStdout(), data)
	}

	err = dumper.writeFile(output, data)
	if err != nil {
		return err
	}

	notify.Successf(deps.console.Err, "wrote %d values in %d scopes to %s",
		data.EntryCount(), data.ScopeCount(), output)

	return nil
}

type dumpFormat struct {
	encode    func(io.Writer, *dataset.Dataset) error
	writeFile func(string, *dataset.Dataset) error
}

func formatFor(format string) (dumpFormat, error) {
	switch format {
	case FormatYAML:
		return dumpFormat{encode: snapshot.Encode, writeFile: snapshot.WriteFile}, nil
	case FormatWire:
		return dumpFormat{encode: wire.Encode, writeFile: wire.WriteFile}, nil
	default:
		return dumpFormat{}, fmt.Errorf("%w: %q (expected %s or %s)", ErrInvalidFormat, format, FormatYAML, FormatWire)
	}
}
