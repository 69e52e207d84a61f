// Package prompt asks the user for single-line answers. On a terminal it
// runs a small bubbletea text input; otherwise it reads a line from the
// given reader, so piped input and tests work without a TTY.
package prompt
