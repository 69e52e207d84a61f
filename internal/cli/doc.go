// Package cli defines the Cobra command tree for the lp3 CLI. Each file in
// this package registers one top-level command (new, templates, doctor,
// config, version) with the root command. Commands delegate to internal
// packages and only handle flag parsing, config precedence and output.
package cli
