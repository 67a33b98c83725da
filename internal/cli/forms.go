package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/cli/formatter"
	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func wbsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2024-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

func validateOptionalDate(s string) error {
	if _, err := dates.Parse(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// nodeOptions lists every node in tree order, indented by depth, after a
// leading entry for noneLabel with the empty value.
func nodeOptions(nodes []*domain.WBSNode, noneLabel string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(noneLabel, "")}
	for _, e := range wbstree.FlattenDepthFirst(nodes) {
		label := strings.Repeat("  ", e.Depth) + e.Node.Name
		opts = append(opts, huh.NewOption(label, e.Node.ID))
	}
	return opts
}

type nodeFormValues struct {
	Name     string
	ParentID string
	Start    string
	End      string
}

func nodeAddForm(v *nodeFormValues, nodes []*domain.WBSNode) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired("name")),
			huh.NewSelect[string]().Title("Parent").Options(nodeOptions(nodes, "(top level)")...).Value(&v.ParentID),
			dateInput("Planned start (YYYY-MM-DD, blank for none)", &v.Start),
			dateInput("Planned end (YYYY-MM-DD, blank for none)", &v.End),
		),
	).WithTheme(wbsHuhTheme()).WithShowHelp(false)
}

type taskFormValues struct {
	Title       string
	Status      string
	WBSID       string
	Priority    string
	Due         string
	Description string
}

func taskAddForm(v *taskFormValues, statuses domain.StatusSet, nodes []*domain.WBSNode) *huh.Form {
	statusOpts := make([]huh.Option[string], 0, len(statuses))
	for _, s := range statuses {
		statusOpts = append(statusOpts, huh.NewOption(string(s), string(s)))
	}
	priorityOpts := []huh.Option[string]{
		huh.NewOption("none", ""),
		huh.NewOption("high", string(domain.PriorityHigh)),
		huh.NewOption("medium", string(domain.PriorityMedium)),
		huh.NewOption("low", string(domain.PriorityLow)),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.Title).Validate(validateRequired("title")),
			huh.NewSelect[string]().Title("Status").Options(statusOpts...).Value(&v.Status),
			huh.NewSelect[string]().Title("WBS node").Options(nodeOptions(nodes, "(unassigned)")...).Value(&v.WBSID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Priority").Options(priorityOpts...).Value(&v.Priority),
			dateInput("Due (YYYY-MM-DD, blank for none)", &v.Due),
			huh.NewText().Title("Description").Value(&v.Description),
		),
	).WithTheme(wbsHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(wbsHuhTheme()).WithShowHelp(false)
}
