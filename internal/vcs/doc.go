// Package vcs initializes a git repository in a generated project and checks
// its .gitignore against the generated files, using go-git so no git binary
// is required.
package vcs
