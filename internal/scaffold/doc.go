// Package scaffold writes the static artifacts of a new Express API project
// from embedded templates: tsconfig.json, .gitignore and the two TypeScript
// sources. It powers the writing phase of "lp3 new".
package scaffold
