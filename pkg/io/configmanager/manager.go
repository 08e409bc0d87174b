package configmanager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/scandiweb/configdiff/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by configdiff.
const EnvPrefix = "CONFIGDIFF"

const (
	configName = ".configdiff"
	configType = "yaml"

	// ConfigFlag names the persistent flag selecting an explicit config file.
	ConfigFlag = "config"
	// VerboseFlag names the persistent flag enabling diagnostic output.
	VerboseFlag = "verbose"
)

// Viper keys.
const (
	KeyColumnWidth           = "column-width"
	KeyPassword              = "password"
	KeyWorkers               = "workers"
	KeyFailOnDiff            = "fail-on-diff"
	KeyVerbose               = "verbose"
	KeyKnownHosts            = "ssh.known-hosts"
	KeyInsecureIgnoreHostKey = "ssh.insecure-ignore-host-key"
	KeySSHTimeout            = "ssh.timeout"
	KeyRemotePHP             = "remote.php"
	KeyLocalSource           = "local.source"
	KeyLocalPath             = "local.path"
	KeyLocalPHP              = "local.php"
	KeyLocalFile             = "local.file"
	KeyTablePrefix           = "local.table-prefix"
)

// InitializeViper creates a viper instance with configdiff defaults, config
// file search paths and environment handling.
func InitializeViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := NewConfig()
	v.SetDefault(KeyColumnWidth, defaults.ColumnWidth)
	v.SetDefault(KeyPassword, defaults.Password)
	v.SetDefault(KeyWorkers, defaults.Workers)
	v.SetDefault(KeyFailOnDiff, defaults.FailOnDiff)
	v.SetDefault(KeyVerbose, defaults.Verbose)
	v.SetDefault(KeyKnownHosts, defaults.SSH.KnownHosts)
	v.SetDefault(KeyInsecureIgnoreHostKey, defaults.SSH.InsecureIgnoreHostKey)
	v.SetDefault(KeySSHTimeout, defaults.SSH.Timeout)
	v.SetDefault(KeyRemotePHP, defaults.Remote.PHP)
	v.SetDefault(KeyLocalSource, defaults.Local.Source)
	v.SetDefault(KeyLocalPath, defaults.Local.Path)
	v.SetDefault(KeyLocalPHP, defaults.Local.PHP)
	v.SetDefault(KeyLocalFile, defaults.Local.File)
	v.SetDefault(KeyTablePrefix, defaults.Local.TablePrefix)

	return v
}

// ConfigManager loads Config for a single command.
type ConfigManager struct {
	Viper *viper.Viper
	// Config is the last loaded configuration.
	Config *Config
	// Writer receives loading notifications.
	Writer io.Writer

	command *cobra.Command
	loaded  bool
}

// NewConfigManager creates a manager that is not bound to any command.
func NewConfigManager(writer io.Writer) *ConfigManager {
	return &ConfigManager{
		Viper:  InitializeViper(),
		Config: NewConfig(),
		Writer: writer,
	}
}

// NewCommandConfigManager creates a manager whose flags live on cmd. Flag groups
// are registered with AddSourceFlags and AddReportFlags.
func NewCommandConfigManager(cmd *cobra.Command, writer io.Writer) *ConfigManager {
	manager := NewConfigManager(writer)
	manager.command = cmd

	return manager
}

// Load resolves the configuration and validates it. Subsequent calls return the
// cached result.
func (m *ConfigManager) Load() (*Config, error) {
	if m.loaded {
		return m.Config, nil
	}

	m.bindInheritedFlags()

	err := m.readConfig()
	if err != nil {
		return nil, err
	}

	config := NewConfig()

	err = m.Viper.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal configuration: %w", ErrInvalidConfig, err)
	}

	err = Validate(config)
	if err != nil {
		return nil, err
	}

	if config.Verbose && m.Viper.ConfigFileUsed() != "" {
		notify.Activityf(m.Writer, "using config file '%s'", m.Viper.ConfigFileUsed())
	}

	m.Config = config
	m.loaded = true

	return config, nil
}

func (m *ConfigManager) readConfig() error {
	if m.command != nil {
		flag := m.command.Flag(ConfigFlag)
		if flag != nil && flag.Value.String() != "" {
			path := flag.Value.String()

			_, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("%w: config file: %w", ErrInvalidConfig, err)
			}

			m.Viper.SetConfigFile(path)
		}
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil
		}

		return fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
	}

	return nil
}

// bindInheritedFlags binds persistent flags declared on parent commands. They
// are only reachable once cobra has parsed the command line.
func (m *ConfigManager) bindInheritedFlags() {
	if m.command == nil {
		return
	}

	flag := m.command.Flag(VerboseFlag)
	if flag != nil {
		_ = m.Viper.BindPFlag(KeyVerbose, flag)
	}
}

// AddSourceFlags registers the flags that select and reach the two
// installations.
func (m *ConfigManager) AddSourceFlags() {
	defaults := NewConfig()
	flags := m.command.Flags()

	flags.String("password", "", "SSH password (prompted when empty)")
	flags.String("remote-php", defaults.Remote.PHP, "PHP interpreter on the remote machine")
	flags.String("known-hosts", "", "known_hosts file used to verify the remote host key (default ~/.ssh/known_hosts)")
	flags.Bool("insecure-ignore-host-key", false, "skip remote host key verification")
	flags.Duration("ssh-timeout", defaults.SSH.Timeout, "timeout for establishing the SSH connection")
	flags.String("local-source", defaults.Local.Source, "local configuration source: exec, file or sqlite")
	flags.String("local-path", defaults.Local.Path, "Magento root used by the exec source")
	flags.String("local-file", "", "snapshot or database file used by the file and sqlite sources")
	flags.String("php", defaults.Local.PHP, "local PHP interpreter used by the exec source")
	flags.String("table-prefix", "", "table prefix used by the sqlite source")

	m.bind(flags, map[string]string{
		KeyPassword:              "password",
		KeyRemotePHP:             "remote-php",
		KeyKnownHosts:            "known-hosts",
		KeyInsecureIgnoreHostKey: "insecure-ignore-host-key",
		KeySSHTimeout:            "ssh-timeout",
		KeyLocalSource:           "local-source",
		KeyLocalPath:             "local-path",
		KeyLocalFile:             "local-file",
		KeyLocalPHP:              "php",
		KeyTablePrefix:           "table-prefix",
	})
}

// AddReportFlags registers the flags that shape the diff report.
func (m *ConfigManager) AddReportFlags() {
	defaults := NewConfig()
	flags := m.command.Flags()

	flags.Int("column-width", defaults.ColumnWidth, "max column width in output")
	flags.Int("workers", defaults.Workers, "number of scopes compared concurrently")
	flags.Bool("fail-on-diff", false, "exit with status 1 when differences are found")

	m.bind(flags, map[string]string{
		KeyColumnWidth: "column-width",
		KeyWorkers:     "workers",
		KeyFailOnDiff:  "fail-on-diff",
	})
}

func (m *ConfigManager) bind(flags *pflag.FlagSet, keys map[string]string) {
	for key, flagName := range keys {
		_ = m.Viper.BindPFlag(key, flags.Lookup(flagName))
	}
}
