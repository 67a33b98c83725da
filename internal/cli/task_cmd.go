package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/cli/formatter"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/mutation"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskStatusCmd(app),
		newTaskDetailsCmd(app),
		newTaskRemoveCmd(app),
		newTaskApplyCmd(app),
		newTaskBoardCmd(app),
	)

	return cmd
}

// wbsRefFlag resolves a --wbs value; "none" means unassigned.
func wbsRefFlag(ctx context.Context, app *App, value string) (*string, error) {
	if value == "" || strings.EqualFold(value, "none") {
		return nil, nil
	}
	id, err := resolveNodeID(ctx, app, value)
	if err != nil {
		return nil, fmt.Errorf("--wbs: %w", err)
	}
	return &id, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, status, wbs, priority, due, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if strings.TrimSpace(title) == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required")
				}
				v := taskFormValues{Status: status, Priority: priority, Due: due, Description: description}
				if v.Status == "" {
					v.Status = string(app.Statuses.Default())
				}
				if err := taskAddForm(&v, app.Statuses, app.WBS.List(ctx)).Run(); err != nil {
					return err
				}
				title, status, priority, due, description = v.Title, v.Status, v.Priority, v.Due, v.Description
				if v.WBSID != "" {
					wbs = v.WBSID
				}
			}

			in := mutation.NewTask{
				Title:       title,
				Status:      domain.TaskStatus(strings.TrimSpace(status)),
				Description: description,
			}
			var err error
			if in.WBSID, err = wbsRefFlag(ctx, app, wbs); err != nil {
				return err
			}
			if in.Priority, err = domain.ParsePriority(priority); err != nil {
				return err
			}
			if in.Due, err = parseDateFlag("due", due); err != nil {
				return err
			}

			t, err := app.Tasks.Add(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s) in %s\n", t.Title, t.ID, app.Views.Label(ctx, t.WBSID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&status, "status", "", "Status (defaults to the first configured status)")
	cmd.Flags().StringVar(&wbs, "wbs", "", "WBS node (id, id prefix or name)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high|medium|low)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	f := &filterFlags{}
	var wbs string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := f.criteria(app.Statuses)
			if err != nil {
				return err
			}
			wbsID, err := wbsRefFlag(ctx, app, wbs)
			if err != nil {
				return err
			}

			list := tasks.FilterByWBS(app.Views.Filtered(ctx, c).Tasks, wbsID)
			today := app.today()

			headers := []string{"ID", "TITLE", "STATUS", "WBS", "DUE", "PRIORITY"}
			rows := make([][]string, 0, len(list))
			for _, t := range list {
				rows = append(rows, []string{
					formatter.TruncID(t.ID),
					t.Title,
					formatter.StatusPill(t.Status, app.Statuses),
					app.Views.Label(ctx, t.WBSID),
					formatter.DueCell(t.Due, today),
					formatter.PriorityBadge(t.Priority),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet())
	cmd.Flags().StringVar(&wbs, "wbs", "", "Only tasks of this WBS node")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, wbs, due string

	cmd := &cobra.Command{
		Use:   "update TASK",
		Short: "Change title, WBS node or due date (use \"none\" to clear)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}

			edit := mutation.EditOf(t)
			if cmd.Flags().Changed("title") {
				edit.Title = title
			}
			if cmd.Flags().Changed("wbs") {
				if edit.WBSID, err = wbsRefFlag(ctx, app, wbs); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("due") {
				if edit.Due, err = parseDateFlag("due", due); err != nil {
					return err
				}
			}

			changed, err := app.Tasks.Update(ctx, id, edit)
			if err != nil {
				return err
			}
			reportChanged(cmd, changed, "Updated task "+edit.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&wbs, "wbs", "", "New WBS node, or none")
	cmd.Flags().StringVar(&due, "due", "", "New due date, or none")

	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status TASK STATUS",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.TaskStatus(strings.TrimSpace(args[1]))
			changed, err := app.Tasks.SetStatus(ctx, id, status)
			if err != nil {
				return err
			}
			reportChanged(cmd, changed, "Status set to "+formatter.StatusPill(status, app.Statuses))
			return nil
		},
	}
}

func newTaskDetailsCmd(app *App) *cobra.Command {
	var priority, description string

	cmd := &cobra.Command{
		Use:   "details TASK",
		Short: "Set a task's priority and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}

			p, desc := t.Priority, t.Description
			if cmd.Flags().Changed("priority") {
				if p, err = domain.ParsePriority(priority); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("desc") {
				desc = description
			}

			changed, err := app.Tasks.SetDetails(ctx, id, p, desc)
			if err != nil {
				return err
			}
			reportChanged(cmd, changed, "Updated details of "+t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high|medium|low, empty to clear)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm TASK...",
		Aliases: []string{"remove"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			removed, err := app.Tasks.Delete(ctx, resolveTaskIDs(ctx, app, args))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d tasks\n", removed)
			return nil
		},
	}
}

func newTaskApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a batch of task edits from a YAML or JSON file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			src, err := openBatchSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer src.Close()

			raw, err := decodeBatch[taskBatchRow](src)
			if err != nil {
				return err
			}
			batch, err := buildTaskBatch(ctx, app, raw)
			if err != nil {
				return err
			}

			res, err := app.Tasks.ApplyBatch(ctx, batch.Rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied: %s\n", res.Summary())
			reportBatchProblems(cmd, res.Rejected, batch.Unknown)
			return nil
		},
	}
}

func newTaskBoardCmd(app *App) *cobra.Command {
	f := &filterFlags{}
	var wbs string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show tasks as a kanban board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := f.criteria(app.Statuses)
			if err != nil {
				return err
			}
			wbsID, err := wbsRefFlag(ctx, app, wbs)
			if err != nil {
				return err
			}

			cols := app.Views.Board(ctx, c, wbsID)
			label := func(t *domain.Task) string { return app.Views.Label(ctx, t.WBSID) }
			if wbsID != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(app.Views.Label(ctx, wbsID)))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBoard(cols, app.Statuses, label, app.today()))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet())
	cmd.Flags().StringVar(&wbs, "wbs", "", "Only tasks of this WBS node")

	return cmd
}
