package configmanager

import "time"

// Default values.
const (
	DefaultColumnWidth = 50
	DefaultWorkers     = 1
	DefaultSSHTimeout  = 30 * time.Second
	DefaultPHP         = "php"
	DefaultLocalSource = "exec"
	DefaultLocalPath   = "."
)

// Config holds every configdiff setting.
type Config struct {
	ColumnWidth int    `mapstructure:"column-width"`
	Password    string `mapstructure:"password"`
	Workers     int    `mapstructure:"workers"`
	FailOnDiff  bool   `mapstructure:"fail-on-diff"`
	Verbose     bool   `mapstructure:"verbose"`

	SSH    SSHConfig    `mapstructure:"ssh"`
	Remote RemoteConfig `mapstructure:"remote"`
	Local  LocalConfig  `mapstructure:"local"`
}

// SSHConfig controls the connection to the remote installation.
type SSHConfig struct {
	KnownHosts            string        `mapstructure:"known-hosts"`
	InsecureIgnoreHostKey bool          `mapstructure:"insecure-ignore-host-key"`
	Timeout               time.Duration `mapstructure:"timeout"`
}

// RemoteConfig describes the remote installation.
type RemoteConfig struct {
	PHP string `mapstructure:"php"`
}

// LocalConfig selects where the local dataset comes from.
type LocalConfig struct {
	Source      string `mapstructure:"source"`
	Path        string `mapstructure:"path"`
	PHP         string `mapstructure:"php"`
	File        string `mapstructure:"file"`
	TablePrefix string `mapstructure:"table-prefix"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		ColumnWidth: DefaultColumnWidth,
		Workers:     DefaultWorkers,
		SSH:         SSHConfig{Timeout: DefaultSSHTimeout},
		Remote:      RemoteConfig{PHP: DefaultPHP},
		Local: LocalConfig{
			Source: DefaultLocalSource,
			Path:   DefaultLocalPath,
			PHP:    DefaultPHP,
		},
	}
}
