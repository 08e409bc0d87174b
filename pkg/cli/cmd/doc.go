// Package cmd provides the command-line interface for configdiff.
//
// The root command carries the persistent --config and --verbose flags and
// delegates to:
//   - diff: compare core_config_data between the local and a remote installation
//   - dump: write a dataset as a YAML snapshot or in the wire format
package cmd
