// Package generator runs the project lifecycle behind "lp3 new": prompting
// for a name, writing the project files, installing dependencies through the
// configured package manager, and reporting completion.
package generator
