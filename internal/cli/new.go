package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sidneyroberto/generator-lp-3/internal/config"
	apperrors "github.com/sidneyroberto/generator-lp-3/internal/errors"
	"github.com/sidneyroberto/generator-lp-3/internal/generator"
	"github.com/sidneyroberto/generator-lp-3/internal/pkgmgr"
	"github.com/sidneyroberto/generator-lp-3/internal/system"
	"github.com/spf13/cobra"
)

var (
	newYes            bool
	newParentDir      string
	newPackageManager string
	newPort           int
	newGit            bool
	newSkipInstall    bool
	newForce          bool
)

func init() {
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Do not prompt; use the configured default name")
	newCmd.Flags().StringVar(&newParentDir, "parent-dir", "", "Directory to create the project in (default: current directory)")
	newCmd.Flags().StringVar(&newPackageManager, "package-manager", "", "Package manager: yarn, npm or pnpm, with optional leading args (default from config: yarn)")
	newCmd.Flags().IntVar(&newPort, "port", config.DefaultPort, "Fallback port written to src/server.ts")
	newCmd.Flags().BoolVar(&newGit, "git", false, "Initialize a git repository in the project")
	newCmd.Flags().BoolVar(&newSkipInstall, "skip-install", false, "Write the project without installing dependencies")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Generate into a non-empty directory")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Generate a new Express + TypeScript API project",
	Long: `Generate a new Express API written in TypeScript.

Without a name argument you are asked for one (default: meu-projeto-de-lp3).
The project directory is initialized with the package manager, receives
tsconfig.json, .gitignore, src/app.ts and src/server.ts, gets "start" and
"dev" scripts, and has its dependencies installed.

Examples:
  lp3 new
  lp3 new my-api --git
  lp3 new my-api --package-manager npm --port 8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	opts := generator.Options{
		DefaultName: config.Get(config.KeyDefaultName),
		Interactive: !newYes,
		ParentDir:   newParentDir,
		Port:        config.GetInt(config.KeyPort),
		Git:         config.GetBool(config.KeyGit),
		SkipInstall: config.GetBool(config.KeySkipInstall),
		Force:       newForce,
	}
	if len(args) == 1 {
		opts.Name = args[0]
	}

	// Flags win over config only when given explicitly.
	flags := cmd.Flags()
	if flags.Changed("port") {
		opts.Port = newPort
	}
	if flags.Changed("git") {
		opts.Git = newGit
	}
	if flags.Changed("skip-install") {
		opts.SkipInstall = newSkipInstall
	}
	spec := config.Get(config.KeyPackageManager)
	if flags.Changed("package-manager") {
		spec = newPackageManager
	}

	exec := system.DefaultExecutor()
	mgr, err := pkgmgr.Dispatch(spec, exec)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(mgr.Name()); err != nil {
		return apperrors.ToolMissing(mgr.Name(), err)
	}

	g := generator.New(opts, mgr)
	g.In = cmd.InOrStdin()
	g.Out = cmd.OutOrStdout()

	result, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}

	printNextSteps(cmd.OutOrStdout(), mgr.Name(), result)
	return nil
}

func printNextSteps(w io.Writer, manager string, result *generator.Result) {
	fmt.Fprintf(w, "\nCreated project at %s/\n", result.ProjectDir)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}

	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  cd %s\n", filepath.Base(result.ProjectDir))
	if !result.Installed {
		fmt.Fprintf(w, "  %s install\n", manager)
	}
	fmt.Fprintf(w, "  %s run dev\n", manager)
}
