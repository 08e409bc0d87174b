// Package cli holds the command line surface of configdiff.
//
// Subpackages:
//
//   - cli/cmd: the cobra command tree (diff, dump) and exit code mapping
//   - cli/ui/errorhandler: command execution with captured stderr
//   - cli/ui/prompt: interactive password input
package cli
