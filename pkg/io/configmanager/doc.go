// Package configmanager loads configdiff settings with viper.
//
// Values are resolved with the precedence defaults < config file < environment
// < flags. The config file is .configdiff.yaml in the working directory or the
// home directory, or the file named by --config. Environment variables use the
// CONFIGDIFF_ prefix with dots and dashes replaced by underscores, for example
// CONFIGDIFF_SSH_KNOWN_HOSTS.
package configmanager
