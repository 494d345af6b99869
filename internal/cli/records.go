package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/progress"
	"github.com/sandeepkv93/tasklog/internal/records"
	"github.com/sandeepkv93/tasklog/internal/search"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		archived bool
		keyword  string
		state    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			var items []model.Record
			if archived {
				items, err = e.svc.LoadArchive(cmd.Context())
			} else {
				items, err = e.svc.Load(cmd.Context())
			}
			if err != nil {
				return err
			}
			cache := search.NewCache(items)
			cache.ApplyFilter(keyword)
			items = cache.Live()
			if state != "" {
				want, err := parseState(state)
				if err != nil {
					return err
				}
				items = filterState(items, want)
			}
			return printRecords(cmd.OutOrStdout(), items, e.svc.Clock())
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "List archived records instead")
	cmd.Flags().StringVar(&keyword, "search", "", "Only titles containing this text (case-sensitive)")
	cmd.Flags().StringVar(&state, "state", "", "Only records in this state")
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		start string
		end   string
		tags  []string
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a record (opens a form when no title is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := records.Draft{
				Title:     strings.Join(args, " "),
				StartDate: start,
				EndDate:   end,
				Tags:      tags,
			}
			if strings.TrimSpace(draft.Title) == "" {
				var err error
				draft, err = runDraftForm(draft)
				if err != nil {
					return err
				}
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.svc.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %q [%s] %s..%s\n", r.UUID, r.Title, r.State, r.StartDate, r.EndDate)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "End date YYYY-MM-DD (default start date)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags")
	return cmd
}

// runDraftForm asks for the record fields interactively.
func runDraftForm(d records.Draft) (records.Draft, error) {
	tags := strings.Join(d.Tags, ",")
	validDate := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := datemath.ParseDate(s)
		return err
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&d.Title).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("title is required")
				}
				return nil
			}),
			huh.NewInput().Title("Start date (YYYY-MM-DD, empty for today)").Value(&d.StartDate).Validate(validDate),
			huh.NewInput().Title("End date (YYYY-MM-DD, empty for start date)").Value(&d.EndDate).Validate(validDate),
			huh.NewInput().Title("Tags (comma-separated)").Value(&tags),
		),
	).WithShowHelp(true).WithShowErrors(true)
	if err := form.Run(); err != nil {
		return d, err
	}
	d.Tags = splitTags(tags)
	return d, nil
}

func newStateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state <id> <state>",
		Short: "Set a record's state (NotStarted, Running, Finished, Giveup, Timeout)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := parseState(args[1])
			if err != nil {
				return err
			}
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.svc.SetState(cmd.Context(), args[0], state)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (%s..%s)\n", r.Title, r.State, r.StartDate, r.EndDate)
			return nil
		},
	}
}

func newArchiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Move a record into the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.svc.Archive(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %s\n", args[0])
			return nil
		},
	}
}

func newRecoverCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recover <id>",
		Short: "Move an archived record back to the active list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.svc.Recover(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recovered %s [%s]\n", r.Title, r.State)
			return nil
		},
	}
}

func newPurgeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <id>",
		Short: "Permanently remove an archived record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.svc.RemoveArchived(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func printRecords(w io.Writer, items []model.Record, clock datemath.Clock) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	now := clock.Now()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATE\tDATES\tLEFT\tDONE\tTITLE")
	for _, r := range items {
		pct := int(progress.Fraction(r.Plan, r.StartDate, r.EndDate, now) * 100)
		title := r.Title
		if len(r.Tags) > 0 {
			title += " #" + strings.Join(r.Tags, " #")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s..%s\t%dd\t%d%%\t%s\n",
			r.UUID, r.State, r.StartDate, r.EndDate,
			progress.RemainingDays(r.StartDate, r.EndDate), pct, title)
	}
	return tw.Flush()
}

func parseState(raw string) (model.RecordState, error) {
	for _, s := range model.States {
		if strings.EqualFold(string(s), raw) {
			return s, nil
		}
	}
	return model.ParseRecordState(raw)
}

func filterState(items []model.Record, state model.RecordState) []model.Record {
	out := make([]model.Record, 0, len(items))
	for _, r := range items {
		if r.State == state {
			out = append(out, r)
		}
	}
	return out
}

func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
