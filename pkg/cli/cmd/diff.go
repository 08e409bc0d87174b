package cmd

import (
	"github.com/scandiweb/configdiff/pkg/di"
	"github.com/scandiweb/configdiff/pkg/io/configmanager"
	"github.com/scandiweb/configdiff/pkg/svc/diff"
	"github.com/scandiweb/configdiff/pkg/svc/formatter"
	"github.com/scandiweb/configdiff/pkg/svc/report"
	"github.com/scandiweb/configdiff/pkg/svc/source/remote"
	"github.com/scandiweb/configdiff/pkg/utils/logging"
	"github.com/scandiweb/configdiff/pkg/utils/notify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const diffCmdLong = `Compare the core_config_data table of the local Magento installation with a
remote one reached over SSH.

For every scope configured locally, the values that differ, exist only
locally, or exist only remotely are printed as a Path/Local/Remote table.
Scopes that exist only on the remote machine are not reported.

The remote configuration is read by running a PHP snippet with the remote
PHP interpreter inside the given Magento root. The local configuration is read
with the local PHP interpreter (--local-source exec), from a snapshot written by
"configdiff dump" (--local-source file), or from an SQLite copy of the database
(--local-source sqlite).`

const diffCmdExample = `  # Compare with production, prompting for the SSH password
  configdiff diff deploy@shop.example.com:/var/www/magento

  # Use a non-standard port and a wider column
  configdiff diff deploy@shop.example.com:2222:/var/www/magento --column-width 80

  # Compare a snapshot with staging and fail in CI when they differ
  configdiff diff deploy@staging.example.com:/srv/shop --local-source file --local-file prod.yaml --fail-on-diff`

// NewDiffCmd creates the diff command.
func NewDiffCmd(runtime *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "diff <user@host[:port]:/path/to/magento/root>",
		Short:        "Compare configuration between the local and a remote installation via SSH",
		Long:         diffCmdLong,
		Example:      diffCmdExample,
		Args:         remoteTargetArgs(1, 1),
		SilenceUsage: true,
	}

	manager := configmanager.NewCommandConfigManager(cmd, nil)
	manager.AddSourceFlags()
	manager.AddReportFlags()

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector di.Injector) error {
			deps, err := resolveDeps(injector)
			if err != nil {
				return err
			}

			return runDiff(cmd, args[0], manager, deps)
		})
	}

	return cmd
}

func runDiff(
	cmd *cobra.Command,
	rawTarget string,
	manager *configmanager.ConfigManager,
	deps *commandDeps,
) error {
	manager.Writer = deps.console.Err

	config, err := manager.Load()
	if err != nil {
		return err
	}

	logger := logging.New(deps.console.Err, config.Verbose)

	target, err := remote.ParseTarget(rawTarget)
	if err != nil {
		return err
	}

	textFormatter, err := formatter.New(config.ColumnWidth)
	if err != nil {
		return err
	}

	localSource, err := deps.localFactory(localOptions(config))
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	remoteSource, session, err := openRemote(ctx, target, config, deps, logger)
	if err != nil {
		return err
	}

	defer closeSession(session, logger)

	notify.Titlef(deps.console.Err, "", "Comparing the local configuration with %s", target)

	remoteData, err := remoteSource.Fetch(ctx)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"scopes": remoteData.ScopeCount(),
		"values": remoteData.EntryCount(),
	}).Debug("remote configuration retrieved")

	localData, err := localSource.Fetch(ctx)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"scopes": localData.ScopeCount(),
		"values": localData.EntryCount(),
		"source": config.Local.Source,
	}).Debug("local configuration retrieved")

	result := diff.NewEngine(diff.WithWorkers(config.Workers)).ComputeDiff(localData, remoteData)

	logger.WithField("rows", result.TotalRows()).Debug("configurations compared")

	err = report.NewRenderer(cmd.OutOrStdout(), textFormatter).RenderAll(result)
	if err != nil {
		return err
	}

	notify.Infof(deps.console.Err, "%d of %d compared scopes differ", result.DifferingScopes(), len(result.Reports))

	if config.FailOnDiff && result.HasDifferences() {
		return ErrDifferencesFound
	}

	return nil
}
