package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dbPath     string
}

// NewRootCommand builds the tasklog command tree. Without a subcommand it
// starts the interactive UI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "tasklog",
		Short: "tasklog - track time-boxed goals and their plans",
		Long: `tasklog keeps records with a start and end date, derives their state from
the calendar, and tracks a checklist plan for each of them.

Run without a subcommand to open the terminal UI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.toml (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Override the database path")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newStateCmd(opts))
	root.AddCommand(newArchiveCmd(opts))
	root.AddCommand(newRecoverCmd(opts))
	root.AddCommand(newPurgeCmd(opts))
	root.AddCommand(newPlanCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newCalendarCmd(opts))
	root.AddCommand(newExportCmd(opts))
	return root
}

// Execute runs the root command
func Execute(version string) error {
	root := NewRootCommand()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
