package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/sidneyroberto/generator-lp-3/internal/branding"
	"github.com/sidneyroberto/generator-lp-3/internal/config"
	"github.com/sidneyroberto/generator-lp-3/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a ready-to-run Express API written in TypeScript:
it initializes package.json, writes the compiler config and sources, adds the
start/dev scripts and installs the dependencies with yarn.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, logJSON, cmd.ErrOrStderr())
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
}

// Execute runs the root command with build info injected via ldflags. The
// returned error has already been reported to the user.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logging.UserError("%v", err)
	}
	return err
}
