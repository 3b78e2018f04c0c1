package cli

import (
	"github.com/namewta/forge/internal/branding"
	"github.com/namewta/forge/internal/config"
	"github.com/namewta/forge/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// app carries state shared by every command of one invocation.
type app struct {
	verbose bool
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.Discard()}

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds agent command documents and Obsidian plugin apps
inside a pnpm monorepo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
			a.log = logging.New(cmd.ErrOrStderr(), a.verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print diagnostic output to stderr")

	root.AddCommand(newCreateCmd(a))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return newRootCmd().Execute()
}
