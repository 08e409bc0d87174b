// Package notify writes short, typed status lines for CLI users.
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ),
// activity (►) and title messages with a customizable emoji. Colours come from
// fatih/color and are disabled automatically when the output is not a terminal.
package notify
