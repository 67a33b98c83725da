package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/filter"
	"github.com/spf13/pflag"
)

// filterFlags is the --from/--to/--status/--name set shared by the list,
// board, summary and schedule commands.
type filterFlags struct {
	from   string
	to     string
	status string
	name   string
}

func (f *filterFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("filter", pflag.ContinueOnError)
	fs.StringVar(&f.from, "from", "", "Only nodes starting on/after, tasks due on/after (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Only nodes starting on/before, tasks due on/before (YYYY-MM-DD)")
	fs.StringVar(&f.status, "status", "", "Only tasks with this status")
	fs.StringVar(&f.name, "name", "", "Only WBS nodes whose name contains this text, and their tasks")
	return fs
}

// criteria builds the filter. Any non-empty flag enables filtering.
func (f *filterFlags) criteria(statuses domain.StatusSet) (filter.Criteria, error) {
	var c filter.Criteria
	var err error
	if c.DateStart, err = dates.Parse(f.from); err != nil {
		return c, fmt.Errorf("--from: %w", err)
	}
	if c.DateEnd, err = dates.Parse(f.to); err != nil {
		return c, fmt.Errorf("--to: %w", err)
	}
	if s := strings.TrimSpace(f.status); s != "" {
		if err := statuses.Validate(domain.TaskStatus(s)); err != nil {
			return c, fmt.Errorf("--status: %w", err)
		}
		c.Status = domain.TaskStatus(s)
	}
	c.NameQuery = strings.TrimSpace(f.name)
	c.Enabled = c.DateStart != nil || c.DateEnd != nil || c.Status != "" || c.NameQuery != ""
	return c, nil
}

// parseDateFlag treats "" and "none" as no date.
func parseDateFlag(name, value string) (*time.Time, error) {
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return nil, nil
	}
	t, err := dates.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}
