// Package errors defines the CLI's exit codes and the GenError type that
// carries them. When an external command fails, its own exit code is kept so
// the CLI exits the same way the package manager did.
package errors
