// Package system provides an abstraction over external command execution so
// the generator can be tested without a package manager installed.
package system

import (
	"context"
	"io"
	"os"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Run executes a command in dir with its output streamed to the
	// executor's writers. It blocks until the command exits.
	Run(ctx context.Context, dir string, name string, args ...string) error

	// Output runs a command in dir and returns its standard output.
	Output(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

	// LookPath reports where an executable lives on PATH.
	LookPath(name string) (string, error)
}

// NewOSExecutor returns an executor that runs real processes. Nil writers
// fall back to the process's own stdio.
func NewOSExecutor(stdin io.Reader, stdout, stderr io.Writer) *OSExecutor {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &OSExecutor{Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

var defaultExecutor CommandExecutor = NewOSExecutor(nil, nil, nil)

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementation.
func ResetDefaults() {
	defaultExecutor = NewOSExecutor(nil, nil, nil)
}
