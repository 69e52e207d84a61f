package scaffold

import "embed"

// The all: prefix keeps dotfile templates such as .gitignore.tmpl.
//
//go:embed all:scaffolds
var scaffoldFS embed.FS
