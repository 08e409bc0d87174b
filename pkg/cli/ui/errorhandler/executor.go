// Package errorhandler runs cobra commands and turns their failures into a
// single error value.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Executor runs a command tree while capturing what cobra writes to stderr.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs cmd with ctx. It returns nil on success, or a *CommandError
// holding the normalized stderr text and the original error.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		cause:   err,
	}
}

// CommandError is a command failure with the text cobra printed for it.
type CommandError struct {
	message string
	cause   error
}

// NewCommandError builds a CommandError. Mostly useful in tests.
func NewCommandError(message string, cause error) *CommandError {
	return &CommandError{message: message, cause: cause}
}

// Error prefers the captured message and appends the cause only when the
// message does not already contain it.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap returns the original error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer cleans up cobra's stderr output.
type DefaultNormalizer struct{}

// Normalize trims whitespace and the "Error: " prefix of the first line. Usage
// hints on following lines are kept.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	first, rest, found := strings.Cut(trimmed, "\n")
	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")

	if !found {
		return first
	}

	return first + "\n" + rest
}
