// Package local retrieves configuration from the installation configdiff runs
// next to.
//
// Three kinds of source are available: exec runs the dump shim with the local
// PHP interpreter, file reads a YAML snapshot written by `configdiff dump`, and
// sqlite reads core_config_data from an SQLite database file.
package local
