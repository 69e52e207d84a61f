// Package logging provides the two kinds of output the CLI produces.
//
// Debug logging is structured and goes through log/slog. It is silent below
// Info unless verbose mode is on:
//
//	logging.Debug("running command", "dir", dir, "argv", argv)
//
// User output is short, prefixed status lines meant for people:
//
//	logging.UserInfo("Creating project folder %s...", name)
//	logging.UserSuccess("Project generation complete!")
//	logging.UserWarning("package.json not found. Skipping script modification.")
//
// UserInfo and UserSuccess write to stdout, UserWarning and UserError to stderr.
// SetOutput redirects both for tests.
package logging
