package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
)

// legacyPriorities maps the labels written by older files onto the
// canonical ones.
var legacyPriorities = map[string]domain.Priority{
	"高": domain.PriorityHigh,
	"中": domain.PriorityMedium,
	"低": domain.PriorityLow,
}

func parsePriority(s string) (domain.Priority, error) {
	if p, ok := legacyPriorities[strings.TrimSpace(s)]; ok {
		return p, nil
	}
	return domain.ParsePriority(s)
}

// ToDataset converts a document into domain records. Call ValidateDocument
// first; ToDataset still reports the first bad field it meets.
func ToDataset(doc *Document, statuses domain.StatusSet) (*domain.Dataset, error) {
	ds := domain.NewDataset()

	for i, r := range doc.WBS {
		n := &domain.WBSNode{
			ID:       r.ID,
			Name:     strings.TrimSpace(r.Name),
			ParentID: blankToNil(r.Parent),
		}
		var err error
		if n.PlannedStart, err = parseDate(r.StartDate); err != nil {
			return nil, fmt.Errorf("wbs[%d].start_date: %w", i, err)
		}
		if n.PlannedEnd, err = parseDate(r.EndDate); err != nil {
			return nil, fmt.Errorf("wbs[%d].end_date: %w", i, err)
		}
		if n.ActualStart, err = parseDate(r.ActualStartDate); err != nil {
			return nil, fmt.Errorf("wbs[%d].actual_start_date: %w", i, err)
		}
		if n.ActualEnd, err = parseDate(r.ActualEndDate); err != nil {
			return nil, fmt.Errorf("wbs[%d].actual_end_date: %w", i, err)
		}
		ds.WBS = append(ds.WBS, n)
	}

	for i, r := range doc.Tasks {
		status := domain.TaskStatus(strings.TrimSpace(r.Status))
		if status == "" {
			status = statuses.Default()
		}
		prio, err := parsePriority(r.Priority)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d].priority: %w", i, err)
		}
		due, err := parseDate(r.Due)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d].due: %w", i, err)
		}
		ds.Tasks = append(ds.Tasks, &domain.Task{
			ID:          r.ID,
			Title:       strings.TrimSpace(r.Title),
			Status:      status,
			WBSID:       blankToNil(r.WBSID),
			Priority:    prio,
			Due:         due,
			Description: r.Description,
		})
	}

	return ds, nil
}

// FromDataset converts domain records into the persisted shape, preserving
// record order.
func FromDataset(ds *domain.Dataset) *Document {
	doc := Empty()
	for _, n := range ds.WBS {
		doc.WBS = append(doc.WBS, NodeRecord{
			ID:              n.ID,
			Name:            n.Name,
			Parent:          domain.StrPtr(domain.StrOrEmpty(n.ParentID)),
			StartDate:       dates.FormatPtr(n.PlannedStart),
			EndDate:         dates.FormatPtr(n.PlannedEnd),
			ActualStartDate: dates.FormatPtr(n.ActualStart),
			ActualEndDate:   dates.FormatPtr(n.ActualEnd),
		})
	}
	for _, t := range ds.Tasks {
		doc.Tasks = append(doc.Tasks, TaskRecord{
			ID:          t.ID,
			Title:       t.Title,
			Status:      string(t.Status),
			WBSID:       domain.StrPtr(domain.StrOrEmpty(t.WBSID)),
			Priority:    string(t.Priority),
			Due:         dates.FormatPtr(t.Due),
			Description: t.Description,
		})
	}
	return doc
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t := dates.ParseLoose(*s)
	if t == nil {
		return nil, fmt.Errorf("invalid date %q", *s)
	}
	return t, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
