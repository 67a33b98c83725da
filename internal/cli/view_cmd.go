package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/wbs/internal/cli/formatter"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/schedule"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	f := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count tasks per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.criteria(app.Statuses)
			if err != nil {
				return err
			}
			counts := app.Views.Summary(context.Background(), c)
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderSummary(counts, app.Statuses))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet())

	return cmd
}

func newScheduleCmd(app *App) *cobra.Command {
	f := &filterFlags{}
	var viewFrom, viewTo string
	var width int

	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"gantt"},
		Short:   "Show planned and actual dates as a Gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := f.criteria(app.Statuses)
			if err != nil {
				return err
			}

			view, err := app.Views.Schedule(ctx, c, schedule.Options{Indent: app.Indent})
			if errors.Is(err, domain.ErrNoSchedule) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No WBS node has a date yet."))
				return nil
			}
			if err != nil {
				return err
			}

			rows, window := view.Rows, view.Window
			if viewFrom != "" || viewTo != "" {
				if viewFrom != "" {
					from, err := parseDateFlag("view-from", viewFrom)
					if err != nil {
						return err
					}
					if from != nil {
						window.Start = *from
					}
				}
				if viewTo != "" {
					to, err := parseDateFlag("view-to", viewTo)
					if err != nil {
						return err
					}
					if to != nil {
						window.End = *to
					}
				}
				if rows, err = view.Visible(window.Start, window.End); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Schedule "+window.String()))
			fmt.Fprint(out, formatter.RenderGantt(rows, window, view.Today, width))
			fmt.Fprintln(out, formatter.Dim("░ planned  █ actual  │ today"))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet())
	cmd.Flags().StringVar(&viewFrom, "view-from", "", "First day shown (defaults to the earliest date)")
	cmd.Flags().StringVar(&viewTo, "view-to", "", "Last day shown (defaults to the latest date)")
	cmd.Flags().IntVar(&width, "width", formatter.DefaultGanttWidth, "Chart width in columns")

	return cmd
}

func newRiskCmd(app *App) *cobra.Command {
	f := &filterFlags{}
	var all bool

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "List WBS nodes that are behind their planned dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := f.criteria(app.Statuses)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, r := range app.Views.Risks(context.Background(), c) {
				flagged := r.Level == domain.RiskCritical || r.Level == domain.RiskAtRisk
				if !all && !flagged {
					continue
				}
				daysLeft := formatter.Dim("--")
				if r.DaysLeft != nil {
					daysLeft = fmt.Sprintf("%d", *r.DaysLeft)
				}
				rows = append(rows, []string{
					r.Node.Name,
					formatter.RiskIndicator(r.Level),
					daysLeft,
					r.Reason,
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, formatter.StyleGreen.Render("✔ Everything is on track"))
				return nil
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"NODE", "RISK", "DAYS LEFT", "REASON"}, rows))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet())
	cmd.Flags().BoolVar(&all, "all", false, "Include nodes that are on track or done")

	return cmd
}
