package cmd

import (
	"context"
	"fmt"

	"github.com/scandiweb/configdiff/pkg/cli/ui/errorhandler"
	"github.com/scandiweb/configdiff/pkg/di"
	"github.com/scandiweb/configdiff/pkg/io/configmanager"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime is NewRootCmd with an explicit dependency runtime.
func NewRootCmdWithRuntime(runtime *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configdiff",
		Short: "Compare Magento configuration between two installations",
		Long: "configdiff compares the core_config_data table of the local Magento installation " +
			"with a remote one reached over SSH, and prints the differing values per scope.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().String(configmanager.ConfigFlag, "", "config file (default .configdiff.yaml in the working or home directory)")
	cmd.PersistentFlags().BoolP(configmanager.VerboseFlag, "v", false, "write diagnostic logs to stderr")

	cmd.AddCommand(NewDiffCmd(runtime))
	cmd.AddCommand(NewDumpCmd(runtime))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// Help cannot fail when writing to cobra's own streams.
	_ = cmd.Help()

	return nil
}
