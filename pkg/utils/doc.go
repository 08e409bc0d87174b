// Package utils provides small utility packages used across configdiff:
//
//   - logging: logrus logger construction for diagnostic output
//   - notify: formatted status messages with symbols and colors
//   - runner: local process execution with output capture
package utils
