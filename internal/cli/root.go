package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/recur/internal/infra/fsworkspace"
	"github.com/aalvaropc/recur/internal/infra/logger"
	"github.com/aalvaropc/recur/internal/infra/workspacefinder"
	"github.com/aalvaropc/recur/internal/ui/tui"
)

func Execute() {
	cmd, closeLog := newRootCmd()
	err := cmd.Execute()
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd returns the command tree and a func that closes the log file
// opened by whichever command ran.
func newRootCmd() (*cobra.Command, func() error) {
	var debug bool
	var cleanup func() error

	closeLog := func() error {
		if cleanup == nil {
			return nil
		}
		return cleanup()
	}

	cmd := &cobra.Command{
		Use:          "recur",
		Short:        "recur: evaluate a linear recurrence iteratively and in closed form",
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			logRoot := ""
			if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
				logRoot = root
			} else if !c.HasParent() {
				// The TUI logs next to where it was started.
				logRoot = wd
			}
			if logRoot == "" {
				return
			}

			cleanup, _ = logger.Setup(logger.Config{
				Root:  logRoot,
				Debug: debug,
			})
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			deps := tui.Deps{
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Logger:               logger.L(),
				Debug:                debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .recur/logs/recur.log")

	cmd.AddCommand(
		runCmd(),
		sweepCmd(),
		validateCmd(),
		scenariosCmd(),
		envsCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd, closeLog
}
