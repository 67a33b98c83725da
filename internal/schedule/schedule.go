// Package schedule projects WBS nodes into chart rows for the Gantt view.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// DefaultIndent is prepended once per depth level to row names.
const DefaultIndent = "  "

type Options struct {
	Indent string
}

// Row is one chart category. ActualEndForChart is display-only: for an
// in-progress node it holds today and is never written back to the node.
type Row struct {
	NodeID            string
	DisplayName       string
	Depth             int
	PlannedStart      *time.Time
	PlannedEnd        *time.Time
	ActualStart       *time.Time
	ActualEnd         *time.Time
	ActualEndForChart *time.Time
	InProgress        bool
}

// HasPlanned reports whether both planned dates are set.
func (r Row) HasPlanned() bool {
	return r.PlannedStart != nil && r.PlannedEnd != nil
}

// HasActual reports whether the node has started.
func (r Row) HasActual() bool {
	return r.ActualStart != nil
}

// Charted reports whether the row has at least one bar to draw.
func (r Row) Charted() bool {
	return r.HasPlanned() || r.HasActual()
}

// Window is a closed date range.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(dates.Layout), w.End.Format(dates.Layout))
}

// View is the chart-ready projection of a WBS.
type View struct {
	Rows   []Row
	Window Window
	Today  time.Time
}

// Build lays nodes out in depth-first display order and derives the default
// window: the earliest present start date to the latest present end date,
// counting today as the end of in-progress nodes. It returns
// domain.ErrNoSchedule when no node carries any date.
func Build(nodes []*domain.WBSNode, today time.Time, opts Options) (*View, error) {
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	today = dates.Truncate(today)

	entries := wbstree.FlattenDepthFirst(nodes)
	v := &View{Rows: make([]Row, 0, len(entries)), Today: today}

	var starts, ends []*time.Time
	for _, e := range entries {
		n := e.Node
		r := Row{
			NodeID:            n.ID,
			DisplayName:       strings.Repeat(indent, e.Depth) + n.Name,
			Depth:             e.Depth,
			PlannedStart:      n.PlannedStart,
			PlannedEnd:        n.PlannedEnd,
			ActualStart:       n.ActualStart,
			ActualEnd:         n.ActualEnd,
			ActualEndForChart: n.ActualEnd,
			InProgress:        n.InProgress(),
		}
		if r.InProgress {
			r.ActualEndForChart = dates.Ptr(today)
		}
		v.Rows = append(v.Rows, r)

		starts = append(starts, r.PlannedStart, r.ActualStart)
		ends = append(ends, r.PlannedEnd, r.ActualEndForChart)
	}

	lo, hi := dates.Min(starts...), dates.Max(ends...)
	if lo == nil && hi == nil {
		return v, domain.ErrNoSchedule
	}
	// A schedule with only end dates (or only start dates) still gets a window.
	if lo == nil {
		lo = dates.Min(ends...)
	}
	if hi == nil {
		hi = dates.Max(starts...)
	}
	if hi.Before(*lo) {
		lo, hi = hi, lo
	}
	v.Window = Window{Start: *lo, End: *hi}
	return v, nil
}

// Visible returns the charted rows whose planned interval reaches into
// [from, to], in display order. A missing planned bound is open.
func (v *View) Visible(from, to time.Time) ([]Row, error) {
	from, to = dates.Truncate(from), dates.Truncate(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s > %s", domain.ErrInvalidWindow, from.Format(dates.Layout), to.Format(dates.Layout))
	}
	var out []Row
	for _, r := range v.Rows {
		if !r.Charted() {
			continue
		}
		if !dates.Overlaps(r.PlannedStart, r.PlannedEnd, &from, &to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
