package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/kballard/go-shellquote"
	apperrors "github.com/sidneyroberto/generator-lp-3/internal/errors"
	"github.com/sidneyroberto/generator-lp-3/internal/logging"
	"github.com/sidneyroberto/generator-lp-3/internal/system"
)

// Manager is a package manager able to set up a Node.js project.
type Manager interface {
	// Name returns the executable name, e.g. "yarn".
	Name() string
	// Init creates package.json in dir without asking questions.
	Init(ctx context.Context, dir string) error
	// Add installs deps into the project in dir, as development
	// dependencies when dev is true. An empty list is a no-op.
	Add(ctx context.Context, dir string, deps []string, dev bool) error
	// Version reports the installed version of the package manager.
	Version(ctx context.Context) (*semver.Version, error)
}

// Supported package manager identifiers.
const (
	Yarn = "yarn"
	Npm  = "npm"
	Pnpm = "pnpm"
)

// MinimumVersions holds the oldest release of each package manager whose
// non-interactive init and add commands behave as expected.
var MinimumVersions = map[string]string{
	Yarn: ">= 1.22.0",
	Npm:  ">= 7.0.0",
	Pnpm: ">= 7.0.0",
}

// Supported returns the package manager names Dispatch accepts.
func Supported() []string {
	return []string{Yarn, Npm, Pnpm}
}

// Dispatch returns the Manager for spec. The spec is the executable name,
// optionally followed by arguments placed before every subcommand, for
// example "yarn --offline". It is split with shell quoting rules.
func Dispatch(spec string, exec system.CommandExecutor) (Manager, error) {
	words, err := shellquote.Split(spec)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("parsing package manager %q: %v", spec, err))
	}
	if len(words) == 0 {
		return nil, apperrors.InvalidInput("package manager must not be empty")
	}
	if exec == nil {
		exec = system.DefaultExecutor()
	}

	c := &commandManager{name: words[0], base: words[1:], exec: exec}
	switch c.name {
	case Yarn:
		c.initArgs = []string{"init", "-y"}
		c.addVerb = "add"
		c.devFlag = "-D"
	case Npm:
		c.initArgs = []string{"init", "-y"}
		c.addVerb = "install"
		c.devFlag = "--save-dev"
	case Pnpm:
		c.initArgs = []string{"init"}
		c.addVerb = "add"
		c.devFlag = "-D"
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown package manager %q: supported are %s",
			c.name, strings.Join(Supported(), ", ")))
	}
	return c, nil
}

// commandManager implements Manager for the CLI-compatible package managers.
// They differ only in verbs and flags.
type commandManager struct {
	name     string
	base     []string
	initArgs []string
	addVerb  string
	devFlag  string
	exec     system.CommandExecutor
}

func (c *commandManager) Name() string { return c.name }

func (c *commandManager) Init(ctx context.Context, dir string) error {
	return c.run(ctx, dir, c.initArgs...)
}

func (c *commandManager) Add(ctx context.Context, dir string, deps []string, dev bool) error {
	if len(deps) == 0 {
		return nil
	}
	args := append([]string{c.addVerb}, deps...)
	if dev {
		args = append(args, c.devFlag)
	}
	return c.run(ctx, dir, args...)
}

func (c *commandManager) Version(ctx context.Context) (*semver.Version, error) {
	argv := c.argv("--version")
	out, err := c.exec.Output(ctx, "", argv[0], argv[1:]...)
	if err != nil {
		return nil, apperrors.CommandFailed(shellquote.Join(argv...), err)
	}
	raw := strings.TrimPrefix(strings.TrimSpace(string(out)), "v")
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s version %q: %w", c.name, raw, err)
	}
	return v, nil
}

func (c *commandManager) argv(args ...string) []string {
	argv := make([]string, 0, 1+len(c.base)+len(args))
	argv = append(argv, c.name)
	argv = append(argv, c.base...)
	return append(argv, args...)
}

func (c *commandManager) run(ctx context.Context, dir string, args ...string) error {
	argv := c.argv(args...)
	line := shellquote.Join(argv...)

	logging.Debug("running command", "dir", dir, "cmd", line)
	logging.UserInfo("Running %s", line)

	if err := c.exec.Run(ctx, dir, argv[0], argv[1:]...); err != nil {
		return apperrors.CommandFailed(line, err)
	}
	return nil
}

// CheckVersion verifies that m is installed in a supported version and
// returns the detected version.
func CheckVersion(ctx context.Context, m Manager) (*semver.Version, error) {
	v, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}
	constraint, ok := MinimumVersions[m.Name()]
	if !ok {
		return v, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	if !c.Check(v) {
		return v, fmt.Errorf("%s %s does not satisfy %s", m.Name(), v, constraint)
	}
	return v, nil
}
