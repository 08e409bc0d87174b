// Package svc provides the service layer of configdiff.
//
// Subpackages:
//   - diff: per-scope comparison of two configuration datasets
//   - formatter: cell text wrapping and absent-value markers
//   - report: rendering of scope reports as tables
//   - source: local and remote configuration sources
package svc
