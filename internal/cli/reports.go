package cli

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/tasklog/internal/calendar"
	"github.com/sandeepkv93/tasklog/internal/export"
	"github.com/sandeepkv93/tasklog/internal/stats"
	"github.com/sandeepkv93/tasklog/internal/views"
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var (
		width int
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize time spent per state across active and archived records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			all, err := e.svc.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			summary := stats.Summarize(all, e.svc.Clock().Now())
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprint(out, views.StatsMarkdown(summary))
				return nil
			}
			fmt.Fprintln(out, views.RenderMarkdown(views.StatsMarkdown(summary)))
			fmt.Fprintln(out, "\nrecords by state")
			fmt.Fprintln(out, views.RenderBars(summary.Counts, width, 10))
			fmt.Fprintln(out, "\ndays by state")
			fmt.Fprintln(out, views.RenderBars(summary.Days, width, 10))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 60, "Chart width in columns")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the markdown report without rendering")
	return cmd
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Print a month grid highlighting days covered by active records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			now := e.svc.Clock().Now()
			month := now
			if len(args) == 1 {
				month, err = time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("invalid month %q: want YYYY-MM", args[0])
				}
			}
			matrix, err := calendar.MonthMatrix(month.Year(), int(month.Month()))
			if err != nil {
				return err
			}
			active, err := e.svc.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderCalendar(views.CalendarData{
				Year:   month.Year(),
				Month:  month.Month(),
				Matrix: matrix,
				Today:  calendar.FromTime(now),
				Active: stats.ActiveDays(active, matrix),
			}))
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write active and archived records to a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var (
				f   export.Format
				err error
			)
			if format != "" {
				f, err = export.ParseFormat(format)
			} else {
				f, err = export.FormatFromPath(path)
			}
			if err != nil {
				return err
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			active, err := e.svc.Load(cmd.Context())
			if err != nil {
				return err
			}
			archived, err := e.svc.LoadArchive(cmd.Context())
			if err != nil {
				return err
			}
			snap := export.Snapshot{Active: active, Archived: archived, At: e.svc.Clock().Now()}
			if err := export.ToFile(path, f, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d record(s) to %s\n", len(active)+len(archived), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or csv (default from file extension)")
	return cmd
}
