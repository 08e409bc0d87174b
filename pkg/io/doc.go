// Package io groups the input and output formats of configdiff.
//
// Subpackages:
//   - configmanager: configuration loading from flags, environment and files
//   - snapshot: YAML snapshots of configuration datasets
//   - wire: the line-oriented stream emitted by the dump snippet
package io
