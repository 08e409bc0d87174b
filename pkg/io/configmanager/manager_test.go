package configmanager_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scandiweb/configdiff/pkg/io/configmanager"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCommand mirrors the CLI layout: persistent flags on a root, the manager on
// a subcommand. The returned manager is usable after the root has executed.
func newCommand(t *testing.T, args ...string) (*configmanager.ConfigManager, *bytes.Buffer, error) {
	t.Helper()

	var (
		out     bytes.Buffer
		manager *configmanager.ConfigManager
	)

	root := &cobra.Command{Use: "configdiff", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String(configmanager.ConfigFlag, "", "config file")
	root.PersistentFlags().Bool(configmanager.VerboseFlag, false, "verbose output")

	sub := &cobra.Command{
		Use: "diff",
		RunE: func(*cobra.Command, []string) error {
			_, err := manager.Load()

			return err
		},
	}
	root.AddCommand(sub)

	manager = configmanager.NewCommandConfigManager(sub, &out)
	manager.AddSourceFlags()
	manager.AddReportFlags()

	root.SetArgs(append([]string{"diff"}, args...))

	return manager, &out, root.Execute()
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "configdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	manager, out, err := newCommand(t)
	require.NoError(t, err)

	assert.Equal(t, configmanager.NewConfig(), manager.Config)
	assert.Empty(t, out.String())
}

func TestLoadFromFlags(t *testing.T) {
	t.Parallel()

	manager, _, err := newCommand(t,
		"--column-width", "80",
		"--workers", "4",
		"--fail-on-diff",
		"--password", "hunter2",
		"--remote-php", "/opt/php/bin/php",
		"--known-hosts", "/etc/ssh/known_hosts",
		"--insecure-ignore-host-key",
		"--ssh-timeout", "5s",
		"--local-source", "sqlite",
		"--local-file", "magento.db",
		"--table-prefix", "mage_",
		"--php", "php8.2",
		"--local-path", "/srv/magento",
		"--verbose",
	)
	require.NoError(t, err)

	config := manager.Config
	assert.Equal(t, 80, config.ColumnWidth)
	assert.Equal(t, 4, config.Workers)
	assert.True(t, config.FailOnDiff)
	assert.True(t, config.Verbose)
	assert.Equal(t, "hunter2", config.Password)
	assert.Equal(t, "/opt/php/bin/php", config.Remote.PHP)
	assert.Equal(t, configmanager.SSHConfig{
		KnownHosts:            "/etc/ssh/known_hosts",
		InsecureIgnoreHostKey: true,
		Timeout:               5 * time.Second,
	}, config.SSH)
	assert.Equal(t, configmanager.LocalConfig{
		Source:      "sqlite",
		Path:        "/srv/magento",
		PHP:         "php8.2",
		File:        "magento.db",
		TablePrefix: "mage_",
	}, config.Local)
}

func TestLoadFromConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
column-width: 72
verbose: true
ssh:
  timeout: 1m
  known-hosts: /tmp/known_hosts
local:
  source: file
  file: snapshot.yaml
`)

	manager, out, err := newCommand(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, 72, manager.Config.ColumnWidth)
	assert.Equal(t, time.Minute, manager.Config.SSH.Timeout)
	assert.Equal(t, "/tmp/known_hosts", manager.Config.SSH.KnownHosts)
	assert.Equal(t, "file", manager.Config.Local.Source)
	assert.Equal(t, "snapshot.yaml", manager.Config.Local.File)
	assert.Contains(t, out.String(), path)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "column-width: 72\nworkers: 2\n")

	manager, _, err := newCommand(t, "--config", path, "--column-width", "30")
	require.NoError(t, err)

	assert.Equal(t, 30, manager.Config.ColumnWidth)
	assert.Equal(t, 2, manager.Config.Workers)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	t.Setenv("CONFIGDIFF_COLUMN_WIDTH", "64")
	t.Setenv("CONFIGDIFF_SSH_TIMEOUT", "10s")
	t.Setenv("CONFIGDIFF_SSH_INSECURE_IGNORE_HOST_KEY", "true")
	t.Setenv("CONFIGDIFF_PASSWORD", "from-env")

	path := writeConfigFile(t, "column-width: 72\n")

	manager, _, err := newCommand(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, 64, manager.Config.ColumnWidth)
	assert.Equal(t, 10*time.Second, manager.Config.SSH.Timeout)
	assert.True(t, manager.Config.SSH.InsecureIgnoreHostKey)
	assert.Equal(t, "from-env", manager.Config.Password)

	manager, _, err = newCommand(t, "--config", path, "--column-width", "20")
	require.NoError(t, err)
	assert.Equal(t, 20, manager.Config.ColumnWidth)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	_, _, err := newCommand(t, "--column-width", "0")
	require.ErrorIs(t, err, configmanager.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "column-width must be at least 1")
}

func TestLoadRejectsBrokenConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "column-width: [\n")

	_, _, err := newCommand(t, "--config", path)
	require.ErrorIs(t, err, configmanager.ErrInvalidConfig)

	_, _, err = newCommand(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, configmanager.ErrInvalidConfig)
}

func TestLoadIsCached(t *testing.T) {
	t.Parallel()

	manager, _, err := newCommand(t, "--workers", "3")
	require.NoError(t, err)

	first := manager.Config

	again, err := manager.Load()
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestNewConfigManagerWithoutCommand(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{})
	manager.Viper.Set(configmanager.KeyWorkers, 6)

	config, err := manager.Load()
	require.NoError(t, err)
	assert.Equal(t, 6, config.Workers)
	assert.Equal(t, configmanager.DefaultColumnWidth, config.ColumnWidth)
}
