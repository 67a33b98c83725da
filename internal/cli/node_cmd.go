package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/cli/formatter"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/mutation"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/alexanderramin/wbs/internal/wbstree"
	"github.com/spf13/cobra"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "node",
		Aliases: []string{"wbs"},
		Short:   "Manage WBS nodes",
	}

	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeListCmd(app),
		newNodeTreeCmd(app),
		newNodeShowCmd(app),
		newNodeRenameCmd(app),
		newNodeDatesCmd(app),
		newNodeMoveCmd(app),
		newNodeRemoveCmd(app),
		newNodeApplyCmd(app),
		newNodeCheckCmd(app),
	)

	return cmd
}

func newNodeAddCmd(app *App) *cobra.Command {
	var name, parent, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a WBS node",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if strings.TrimSpace(name) == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				v := nodeFormValues{Start: start, End: end}
				if err := nodeAddForm(&v, app.WBS.List(ctx)).Run(); err != nil {
					return err
				}
				name, start, end = v.Name, v.Start, v.End
				if v.ParentID != "" {
					parent = v.ParentID
				}
			}

			in := mutation.NewNode{Name: name}
			if parent != "" {
				pid, err := resolveNodeID(ctx, app, parent)
				if err != nil {
					return fmt.Errorf("--parent: %w", err)
				}
				in.ParentID = &pid
			}
			var err error
			if in.PlannedStart, err = parseDateFlag("start", start); err != nil {
				return err
			}
			if in.PlannedEnd, err = parseDateFlag("end", end); err != nil {
				return err
			}

			n, err := app.WBS.Add(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created WBS node %s (%s)\n", n.Name, n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Node name")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent node (id, id prefix or name)")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD)")

	return cmd
}

func newNodeListCmd(app *App) *cobra.Command {
	f := &filterFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List WBS nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := f.criteria(app.Statuses)
			if err != nil {
				return err
			}

			nodes := app.Views.Filtered(ctx, c).WBS
			index := make(map[string]*domain.WBSNode, len(nodes))
			for _, n := range app.WBS.List(ctx) {
				index[n.ID] = n
			}

			headers := []string{"ID", "NAME", "PARENT", "PLANNED", "ACTUAL"}
			rows := make([][]string, 0, len(nodes))
			for _, n := range nodes {
				rows = append(rows, []string{
					formatter.TruncID(n.ID),
					n.Name,
					parentLabel(index, n.ParentID),
					formatter.DateRange(n.PlannedStart, n.PlannedEnd),
					formatter.DateRange(n.ActualStart, n.ActualEnd),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet())

	return cmd
}

func parentLabel(index map[string]*domain.WBSNode, parentID *string) string {
	if parentID == nil {
		return formatter.Dim("--")
	}
	if p, ok := index[*parentID]; ok {
		return p.Name
	}
	return formatter.StyleRed.Render("missing " + *parentID)
}

func newNodeTreeCmd(app *App) *cobra.Command {
	f := &filterFlags{}
	var withTasks bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the WBS as a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := f.criteria(app.Statuses)
			if err != nil {
				return err
			}

			ds := app.Views.Filtered(ctx, c)
			entries := wbstree.FlattenDepthFirst(ds.WBS)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No WBS nodes."))
				return nil
			}

			var detail func(wbstree.Entry) string
			if withTasks {
				detail = func(e wbstree.Entry) string {
					id := e.Node.ID
					n := len(tasks.FilterByWBS(ds.Tasks, &id))
					if n == 0 {
						return ""
					}
					return fmt.Sprintf("%d tasks", n)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTree(formatter.TreeItems(entries, detail)))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(f.flagSet())
	cmd.Flags().BoolVar(&withTasks, "tasks", false, "Show task counts per node")

	return cmd
}

func newNodeShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NODE",
		Short: "Show node details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := app.WBS.Get(ctx, id)
			if err != nil {
				return err
			}

			var path []string
			for _, p := range wbstree.Path(app.WBS.List(ctx), n.ID) {
				path = append(path, p.Name)
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("%s\n\n", formatter.Bold(n.Name)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("ID     "), n.ID))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("PATH   "), strings.Join(path, " / ")))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("PLANNED"), formatter.DateRange(n.PlannedStart, n.PlannedEnd)))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("ACTUAL "), formatter.DateRange(n.ActualStart, n.ActualEnd)))

			own := app.Tasks.List(ctx, &n.ID)
			if len(own) > 0 {
				b.WriteString("\n")
				b.WriteString(formatter.Header("Tasks"))
				b.WriteString("\n")
				rows := make([][]string, 0, len(own))
				for _, t := range own {
					rows = append(rows, []string{
						formatter.TruncID(t.ID),
						t.Title,
						formatter.StatusPill(t.Status, app.Statuses),
					})
				}
				b.WriteString(formatter.RenderTable([]string{"ID", "TITLE", "STATUS"}, rows))
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("WBS Node", b.String()))
			return nil
		},
	}
	return cmd
}

func newNodeRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename NODE NAME",
		Short: "Rename a WBS node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			changed, err := app.WBS.Rename(ctx, id, args[1])
			if err != nil {
				return err
			}
			reportChanged(cmd, changed, "Renamed node to "+strings.TrimSpace(args[1]))
			return nil
		},
	}
}

func newNodeDatesCmd(app *App) *cobra.Command {
	var start, end, actualStart, actualEnd string

	cmd := &cobra.Command{
		Use:   "dates NODE",
		Short: "Set planned and actual dates (use \"none\" to clear)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := app.WBS.Get(ctx, id)
			if err != nil {
				return err
			}

			edit := mutation.DatesOf(n)
			flags := []struct {
				name  string
				value string
				dst   **time.Time
			}{
				{"start", start, &edit.PlannedStart},
				{"end", end, &edit.PlannedEnd},
				{"actual-start", actualStart, &edit.ActualStart},
				{"actual-end", actualEnd, &edit.ActualEnd},
			}
			for _, fl := range flags {
				if !cmd.Flags().Changed(fl.name) {
					continue
				}
				if *fl.dst, err = parseDateFlag(fl.name, fl.value); err != nil {
					return err
				}
			}

			changed, err := app.WBS.SetDates(ctx, id, edit)
			if err != nil {
				return err
			}
			reportChanged(cmd, changed, fmt.Sprintf("Updated dates of %s", n.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Planned start")
	cmd.Flags().StringVar(&end, "end", "", "Planned end")
	cmd.Flags().StringVar(&actualStart, "actual-start", "", "Actual start")
	cmd.Flags().StringVar(&actualEnd, "actual-end", "", "Actual end")

	return cmd
}

func newNodeMoveCmd(app *App) *cobra.Command {
	var parent string
	var top bool

	cmd := &cobra.Command{
		Use:   "move NODE",
		Short: "Move a node under another parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if top == (parent != "") {
				return fmt.Errorf("specify exactly one of --parent or --top")
			}
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var target *string
			if !top {
				pid, err := resolveNodeID(ctx, app, parent)
				if err != nil {
					return fmt.Errorf("--parent: %w", err)
				}
				target = &pid
			}

			changed, err := app.WBS.Move(ctx, id, target)
			if err != nil {
				return err
			}
			reportChanged(cmd, changed, "Moved node")
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "New parent node")
	cmd.Flags().BoolVar(&top, "top", false, "Make the node top-level")

	return cmd
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm NODE...",
		Aliases: []string{"remove"},
		Short:   "Delete nodes with all their descendants",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ids := resolveNodeIDs(ctx, app, args)

			affected := mutation.ExpandCascade(app.WBS.List(ctx), ids)
			if len(affected) > len(ids) && !yes && app.interactive() {
				confirmed := false
				title := fmt.Sprintf("Delete %d nodes including descendants?", len(affected))
				if err := confirmForm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			removed, err := app.WBS.Delete(ctx, ids)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d WBS nodes\n", removed)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newNodeApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a batch of WBS edits from a YAML or JSON file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			src, err := openBatchSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer src.Close()

			raw, err := decodeBatch[wbsBatchRow](src)
			if err != nil {
				return err
			}
			batch, err := buildWBSBatch(ctx, app, raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warn := cmd.ErrOrStderr()
			renamed := 0
			for id, name := range batch.Renames {
				changed, err := app.WBS.Rename(ctx, id, name)
				if err != nil {
					fmt.Fprintf(warn, "  rejected %s: %v\n", id, err)
					continue
				}
				if changed {
					renamed++
				}
			}

			res, err := app.WBS.ApplyBatch(ctx, batch.Rows)
			if err != nil {
				return err
			}
			summary := res.Summary()
			if renamed > 0 {
				summary = fmt.Sprintf("%d renamed, %s", renamed, summary)
			}
			fmt.Fprintf(out, "Applied: %s\n", summary)
			reportBatchProblems(cmd, res.Rejected, batch.Unknown)
			return nil
		},
	}
}

func newNodeCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report orphaned nodes and tasks pointing at missing nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.WBS.Check(context.Background())
			out := cmd.OutOrStdout()
			if report.OK() {
				fmt.Fprintln(out, formatter.StyleGreen.Render("✔ No integrity problems"))
				return nil
			}
			if len(report.Orphans) > 0 {
				fmt.Fprintln(out, formatter.Header("Orphaned nodes"))
				for _, n := range report.Orphans {
					fmt.Fprintf(out, "  %s %s -> missing parent %s\n", formatter.TruncID(n.ID), n.Name, domain.StrOrEmpty(n.ParentID))
				}
			}
			if len(report.DanglingTasks) > 0 {
				fmt.Fprintln(out, formatter.Header("Tasks with missing WBS node"))
				for _, t := range report.DanglingTasks {
					fmt.Fprintf(out, "  %s %s -> %s\n", formatter.TruncID(t.ID), t.Title, domain.StrOrEmpty(t.WBSID))
				}
			}
			return nil
		},
	}
}

func reportChanged(cmd *cobra.Command, changed bool, msg string) {
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
}

func reportBatchProblems(cmd *cobra.Command, rejected []mutation.Rejection, unknown []string) {
	warn := cmd.ErrOrStderr()
	for _, r := range rejected {
		fmt.Fprintf(warn, "  rejected %v\n", r)
	}
	for _, id := range unknown {
		fmt.Fprintf(warn, "  skipped unknown id %s\n", id)
	}
}
