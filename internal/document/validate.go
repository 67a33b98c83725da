package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// ErrInvalidDocument wraps the joined validation errors of a rejected load.
var ErrInvalidDocument = errors.New("invalid document")

// ValidateDocument checks a decoded document before conversion and returns
// every problem found. Dangling references are not errors.
func ValidateDocument(doc *Document, statuses domain.StatusSet) []error {
	var errs []error

	nodeIDs := make(map[string]bool, len(doc.WBS))
	errs = append(errs, validateNodes(doc.WBS, nodeIDs)...)
	if len(errs) == 0 {
		errs = append(errs, validateAcyclic(doc.WBS)...)
	}
	errs = append(errs, validateTasks(doc.Tasks, statuses)...)

	return errs
}

func validateNodes(nodes []NodeRecord, nodeIDs map[string]bool) []error {
	var errs []error

	for i, n := range nodes {
		prefix := fmt.Sprintf("wbs[%d]", i)

		if n.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if nodeIDs[n.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, n.ID))
		} else {
			nodeIDs[n.ID] = true
		}

		if strings.TrimSpace(n.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if n.Parent != nil && *n.Parent == n.ID {
			errs = append(errs, fmt.Errorf("%s.parent: node %q is its own parent", prefix, n.ID))
		}

		errs = append(errs, validateOptionalDate(prefix+".start_date", n.StartDate)...)
		errs = append(errs, validateOptionalDate(prefix+".end_date", n.EndDate)...)
		errs = append(errs, validateOptionalDate(prefix+".actual_start_date", n.ActualStartDate)...)
		errs = append(errs, validateOptionalDate(prefix+".actual_end_date", n.ActualEndDate)...)
	}

	return errs
}

func validateAcyclic(nodes []NodeRecord) []error {
	shallow := make([]*domain.WBSNode, 0, len(nodes))
	for _, n := range nodes {
		shallow = append(shallow, &domain.WBSNode{ID: n.ID, ParentID: blankToNil(n.Parent)})
	}
	if cycle := wbstree.FindCycle(shallow); cycle != nil {
		return []error{fmt.Errorf("wbs: parent cycle through %s", strings.Join(cycle, " -> "))}
	}
	return nil
}

func validateTasks(tasks []TaskRecord, statuses domain.StatusSet) []error {
	var errs []error
	seen := make(map[string]bool, len(tasks))

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if seen[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, t.ID))
		} else {
			seen[t.ID] = true
		}

		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.Status != "" && !statuses.Contains(domain.TaskStatus(t.Status)) {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q (expected one of %s)", prefix, t.Status, statuses))
		}
		if _, err := parsePriority(t.Priority); err != nil {
			errs = append(errs, fmt.Errorf("%s.priority: %w", prefix, err))
		}

		errs = append(errs, validateOptionalDate(prefix+".due", t.Due)...)
	}

	return errs
}

// validateOptionalDate accepts anything ParseLoose understands, so
// timestamps written by other tools load and are normalised on save.
func validateOptionalDate(field string, val *string) []error {
	if val == nil || strings.TrimSpace(*val) == "" {
		return nil
	}
	if dates.ParseLoose(*val) == nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *val)}
	}
	return nil
}

// FormatErrors joins validation errors into one error, or nil.
func FormatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, "  - "+e.Error())
	}
	return fmt.Errorf("%w (%d errors):\n%s", ErrInvalidDocument, len(errs), strings.Join(msgs, "\n"))
}
