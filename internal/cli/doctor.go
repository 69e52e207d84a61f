package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sidneyroberto/generator-lp-3/internal/config"
	"github.com/sidneyroberto/generator-lp-3/internal/pkgmgr"
	"github.com/sidneyroberto/generator-lp-3/internal/system"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the tools a generation needs are available",
	Long: `Run diagnostic checks for project generation: Node.js on PATH, the
configured package manager and its minimum version, and the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		exec := system.DefaultExecutor()

		runRuntimeCheck(w, exec)
		runPackageManagerCheck(cmd.Context(), w, exec, config.Get(config.KeyPackageManager))
		runConfigCheck(w)
		return nil
	},
}

func runRuntimeCheck(w io.Writer, exec system.CommandExecutor) {
	fmt.Fprintln(w, "Runtime check:")
	checkBinary(w, exec, "node")
}

func runPackageManagerCheck(ctx context.Context, w io.Writer, exec system.CommandExecutor, spec string) {
	fmt.Fprintln(w, "Package manager check:")

	mgr, err := pkgmgr.Dispatch(spec, exec)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}
	if !checkBinary(w, exec, mgr.Name()) {
		return
	}

	v, err := pkgmgr.CheckVersion(ctx, mgr)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	default:
		fmt.Fprintf(w, "  [ OK ] %s %s satisfies %s\n", mgr.Name(), v, pkgmgr.MinimumVersions[mgr.Name()])
	}
}

func runConfigCheck(w io.Writer) {
	fmt.Fprintln(w, "Config check:")

	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  [INFO] No config file at %s, using defaults\n", path)
	} else {
		fmt.Fprintf(w, "  [ OK ] Config file at %s\n", path)
	}
	for _, key := range config.Keys() {
		fmt.Fprintf(w, "         %s = %s\n", key, config.Get(key))
	}
}

func checkBinary(w io.Writer, exec system.CommandExecutor, name string) bool {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	return true
}
