package vcs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Init creates a non-bare repository in dir. It reports false without error
// when dir already holds a repository.
func Init(dir string) (bool, error) {
	_, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("initializing git repository in %s: %w", dir, err)
	}
	return true, nil
}

// IgnoredFiles returns the subset of files (slash-separated, relative to dir)
// that the patterns in dir/.gitignore would exclude from the repository.
// A missing .gitignore ignores nothing.
func IgnoredFiles(dir string, files []string) ([]string, error) {
	patterns, err := readPatterns(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	m := gitignore.NewMatcher(patterns)
	var ignored []string
	for _, f := range files {
		if m.Match(strings.Split(filepath.ToSlash(f), "/"), false) {
			ignored = append(ignored, f)
		}
	}
	return ignored, nil
}

func readPatterns(path string) ([]gitignore.Pattern, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns, nil
}
