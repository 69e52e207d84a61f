package generator

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/sidneyroberto/generator-lp-3/internal/branding"
	apperrors "github.com/sidneyroberto/generator-lp-3/internal/errors"
	"github.com/sidneyroberto/generator-lp-3/internal/logging"
	"github.com/sidneyroberto/generator-lp-3/internal/manifest"
	"github.com/sidneyroberto/generator-lp-3/internal/pkgmgr"
	"github.com/sidneyroberto/generator-lp-3/internal/prompt"
	"github.com/sidneyroberto/generator-lp-3/internal/scaffold"
	"github.com/sidneyroberto/generator-lp-3/internal/vcs"
)

// DefaultName is the project name offered when the user gives none.
const DefaultName = "meu-projeto-de-lp3"

// Options controls a single generation.
type Options struct {
	Name        string // Project name; empty means ask (or DefaultName when not interactive)
	DefaultName string // Default offered by the prompt; empty means DefaultName
	Interactive bool   // Ask for the name when Name is empty
	ParentDir   string // Directory the project is created in; empty means the working directory
	Port        int    // Fallback port compiled into src/server.ts
	Git         bool   // Initialize a git repository after writing
	SkipInstall bool   // Skip the dependency installation phase
	Force       bool   // Generate into a non-empty destination
}

// Result describes a finished generation.
type Result struct {
	ProjectDir      string
	Files           []string
	ScriptsInjected bool
	Installed       bool
	Warnings        []string
}

// Generator runs the generation lifecycle with a package manager.
type Generator struct {
	Options Options
	Manager pkgmgr.Manager
	In      io.Reader
	Out     io.Writer
}

// New creates a Generator reading answers from stdin and writing prompts to
// the user output stream.
func New(opts Options, mgr pkgmgr.Manager) *Generator {
	return &Generator{
		Options: opts,
		Manager: mgr,
		In:      os.Stdin,
		Out:     logging.Stdout(),
	}
}

// Run executes the prompting, writing, install and end phases in order. A
// failing package manager command stops the run with its error.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	name, err := g.prompting()
	if err != nil {
		return nil, err
	}

	dir, err := g.destination(name)
	if err != nil {
		return nil, err
	}

	result := &Result{ProjectDir: dir}
	log := logging.With("project", name, "dir", dir)

	log.Debug("phase started", "phase", "writing")
	if err := g.writing(ctx, name, result); err != nil {
		return nil, err
	}

	log.Debug("phase started", "phase", "install")
	if err := g.install(ctx, result); err != nil {
		return nil, err
	}

	log.Debug("phase started", "phase", "end")
	for _, w := range result.Warnings {
		log.Debug("generation warning", "warning", w)
		logging.UserWarning("%s", w)
	}
	logging.UserSuccess("Project generation complete!")
	return result, nil
}

func (g *Generator) prompting() (string, error) {
	fmt.Fprintln(g.Out, prompt.Banner(branding.DisplayName()))

	def := g.Options.DefaultName
	if def == "" {
		def = DefaultName
	}

	name := g.Options.Name
	if name == "" && g.Options.Interactive {
		answer, err := prompt.Ask(prompt.Question{Message: "Project name", Default: def}, g.In, g.Out)
		if stderrors.Is(err, prompt.ErrCancelled) {
			return "", apperrors.PromptCancelled(err)
		}
		if err != nil {
			return "", fmt.Errorf("asking project name: %w", err)
		}
		name = answer
	}
	if name == "" {
		name = def
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.InvalidInput("project name must not be empty")
	}
	return name, nil
}

// destination resolves <parent>/<name> and checks it can receive a project.
func (g *Generator) destination(name string) (string, error) {
	parent := g.Options.ParentDir
	if parent == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		parent = wd
	}
	parent, err := filepath.Abs(parent)
	if err != nil {
		return "", fmt.Errorf("resolving parent directory: %w", err)
	}

	dir, err := securejoin.SecureJoin(parent, name)
	if err != nil {
		return "", fmt.Errorf("resolving project directory: %w", err)
	}
	if dir == parent || dir != filepath.Join(parent, name) {
		return "", apperrors.InvalidInput(fmt.Sprintf("project name %q must name a directory inside %s", name, parent))
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return dir, nil
	case err != nil:
		return "", fmt.Errorf("checking %s: %w", dir, err)
	case !info.IsDir():
		return "", apperrors.DestinationConflict(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}
	if len(entries) > 0 && !g.Options.Force {
		return "", apperrors.DestinationConflict(dir)
	}
	return dir, nil
}

func (g *Generator) writing(ctx context.Context, name string, result *Result) error {
	dir := result.ProjectDir
	logging.UserInfo("Creating project folder %s and initializing it...", name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	if err := g.Manager.Init(ctx, dir); err != nil {
		return err
	}

	scaffolded, err := scaffold.Generate(scaffold.ExpressAPI, scaffold.NewData(name, g.Options.Port), dir)
	if err != nil {
		return fmt.Errorf("writing project files: %w", err)
	}
	result.Files = append(result.Files, scaffolded.Files...)
	result.Warnings = append(result.Warnings, scaffolded.Warnings...)

	pkgPath := filepath.Join(dir, manifest.PackageFile)
	injected, err := manifest.InjectScripts(pkgPath, manifest.DefaultScripts)
	if err != nil {
		return err
	}
	result.ScriptsInjected = injected
	if injected {
		result.Warnings = append(result.Warnings, validatePackage(pkgPath)...)
	} else {
		logging.UserInfo("%s not found. Skipping script modification.", manifest.PackageFile)
	}

	if g.Options.Git {
		created, err := vcs.Init(dir)
		if err != nil {
			return err
		}
		if created {
			logging.UserInfo("Initialized git repository")
		}
		ignored, err := vcs.IgnoredFiles(dir, result.Files)
		if err != nil {
			return err
		}
		for _, f := range ignored {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s is excluded by .gitignore", f))
		}
	}
	return nil
}

func (g *Generator) install(ctx context.Context, result *Result) error {
	if g.Options.SkipInstall {
		logging.UserInfo("Skipping dependency installation")
		return nil
	}

	logging.UserInfo("Installing dependencies...")
	if err := g.Manager.Add(ctx, result.ProjectDir, pkgmgr.Dependencies, false); err != nil {
		return err
	}
	if err := g.Manager.Add(ctx, result.ProjectDir, pkgmgr.DevDependencies, true); err != nil {
		return err
	}
	result.Installed = true
	return nil
}

func validatePackage(path string) []string {
	res, err := manifest.ValidateFile(manifest.KindPackage, path)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate %s: %v", manifest.PackageFile, err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, manifest.PackageFile+" "+issue.String())
	}
	return warnings
}
