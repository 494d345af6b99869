package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/progress"
	"github.com/sandeepkv93/tasklog/internal/records"
	"github.com/spf13/cobra"
)

func newPlanCmd(opts *rootOptions) *cobra.Command {
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Show and edit a record's checklist plan",
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the plan of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), r)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <id> <step>",
		Short: "Append a step to the plan",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editPlan(cmd, opts, args[0], func(r model.Record) (model.Record, error) {
				return records.AddStep(r, strings.Join(args[1:], " ")), nil
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id> <step-number>",
		Short: "Flip a step between done and open",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editPlan(cmd, opts, args[0], func(r model.Record) (model.Record, error) {
				i, err := stepIndex(args[1], len(r.Plan))
				if err != nil {
					return r, err
				}
				return records.ToggleStep(r, i), nil
			})
		},
	}

	var locale string
	generate := &cobra.Command{
		Use:   "generate <id>",
		Short: "Replace the plan with one generated by the configured model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			if locale == "" {
				locale = e.cfg.Locale
			}
			r, err := e.svc.GeneratePlan(cmd.Context(), args[0], locale)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), r)
			return nil
		},
	}
	generate.Flags().StringVar(&locale, "locale", "", "Language of the generated steps (default from config)")

	plan.AddCommand(show, add, toggle, generate)
	return plan
}

func editPlan(cmd *cobra.Command, opts *rootOptions, id string, edit func(model.Record) (model.Record, error)) error {
	e, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.svc.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	r, err = edit(r)
	if err != nil {
		return err
	}
	saved, err := e.svc.Save(cmd.Context(), r)
	if err != nil {
		return err
	}
	printPlan(cmd.OutOrStdout(), saved)
	return nil
}

func stepIndex(raw string, n int) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("invalid step number %q (plan has %d steps)", raw, n)
	}
	return i - 1, nil
}

func printPlan(w io.Writer, r model.Record) {
	fmt.Fprintf(w, "%s [%s]\n", r.Title, r.State)
	if len(r.Plan) == 0 {
		fmt.Fprintln(w, "  (no plan)")
		return
	}
	current := progress.CurrentPlanStep(r.Plan)
	for i, step := range r.Plan {
		box := "[ ]"
		if step.IsFinished {
			box = "[x]"
		}
		marker := ""
		if i == current {
			marker = "  <- current"
		}
		fmt.Fprintf(w, "  %d. %s %s%s\n", i+1, box, step.Detail, marker)
	}
}
