// Package runner executes external processes while capturing their output.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// CommandResult captures the stdout and stderr collected during a process run.
// Both fields contain the complete output, including any output produced before
// an error occurred.
type CommandResult struct {
	Stdout []byte
	Stderr []byte
}

// CommandRunner runs a program inside a working directory.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (CommandResult, error)
}

// ExecCommandRunner runs programs with os/exec.
type ExecCommandRunner struct{}

// NewExecCommandRunner creates a runner backed by os/exec.
func NewExecCommandRunner() *ExecCommandRunner {
	return &ExecCommandRunner{}
}

// Run starts name with args in dir and waits for it to finish. The process is
// killed when ctx is cancelled.
func (r *ExecCommandRunner) Run(
	ctx context.Context,
	dir, name string,
	args ...string,
) (CommandResult, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()

	result := CommandResult{
		Stdout: outBuf.Bytes(),
		Stderr: errBuf.Bytes(),
	}

	if runErr != nil {
		return result, fmt.Errorf("run %s: %w", name, runErr)
	}

	return result, nil
}

// Func adapts a function to the CommandRunner interface.
type Func func(ctx context.Context, dir, name string, args ...string) (CommandResult, error)

// Run calls f.
func (f Func) Run(ctx context.Context, dir, name string, args ...string) (CommandResult, error) {
	return f(ctx, dir, name, args...)
}
