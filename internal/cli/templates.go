package cli

import (
	"fmt"
	"strings"

	"github.com/sidneyroberto/generator-lp-3/internal/manifest"
	"github.com/sidneyroberto/generator-lp-3/internal/pkgmgr"
	"github.com/sidneyroberto/generator-lp-3/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Show what a generated project contains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := scaffold.Files(scaffold.ExpressAPI)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Template %s:\n", scaffold.ExpressAPI)
		for _, f := range files {
			fmt.Fprintf(w, "  %s\n", f)
		}

		fmt.Fprintln(w, "\nScripts:")
		for _, s := range manifest.DefaultScripts {
			fmt.Fprintf(w, "  %-6s %s\n", s.Name, s.Command)
		}

		fmt.Fprintln(w, "\nDependencies:")
		fmt.Fprintf(w, "  %s\n", strings.Join(pkgmgr.Dependencies, " "))
		fmt.Fprintln(w, "\nDev dependencies:")
		fmt.Fprintf(w, "  %s\n", strings.Join(pkgmgr.DevDependencies, " "))
		return nil
	},
}
