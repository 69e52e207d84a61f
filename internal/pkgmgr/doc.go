// Package pkgmgr drives the Node.js package manager that initializes the
// generated project and installs its dependencies. Dispatch selects yarn,
// npm, or pnpm from the configured name; every command runs through a
// system.CommandExecutor in the project directory.
package pkgmgr
