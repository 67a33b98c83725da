package mutation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/google/uuid"
)

// NewTask carries the fields accepted when a task is created.
type NewTask struct {
	Title       string
	Status      domain.TaskStatus
	WBSID       *string
	Priority    domain.Priority
	Due         *time.Time
	Description string
}

// AddTask appends a task. An empty status takes the set's default.
func AddTask(ds *domain.Dataset, in NewTask, statuses domain.StatusSet) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	status := in.Status
	if status == "" {
		status = statuses.Default()
	}
	if err := statuses.Validate(status); err != nil {
		return nil, err
	}
	if err := checkWBSRef(ds, in.WBSID); err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Status:      status,
		WBSID:       copyStr(in.WBSID),
		Priority:    in.Priority,
		Due:         copyDate(in.Due),
		Description: in.Description,
	}
	ds.Tasks = append(ds.Tasks, t)
	return t, nil
}

// TaskEdit is the set of task fields editable in bulk.
type TaskEdit struct {
	Title string
	WBSID *string
	Due   *time.Time
}

// EditOf captures a task's current editable fields.
func EditOf(t *domain.Task) TaskEdit {
	return TaskEdit{Title: t.Title, WBSID: copyStr(t.WBSID), Due: copyDate(t.Due)}
}

// UpdateTask applies title, WBS reference and due date together when any of
// them differs. A blank title is rejected with ErrEmptyTitle and the task is
// left unchanged. Unknown task ids are a no-op.
func UpdateTask(ds *domain.Dataset, id string, e TaskEdit) (bool, error) {
	t := ds.Task(id)
	if t == nil {
		return false, nil
	}
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return false, domain.ErrEmptyTitle
	}
	if err := checkWBSRef(ds, e.WBSID); err != nil {
		return false, err
	}
	if t.Title == title && domain.StrPtrEqual(t.WBSID, e.WBSID) && dates.Equal(t.Due, e.Due) {
		return false, nil
	}
	t.Title = title
	t.WBSID = copyStr(e.WBSID)
	t.Due = copyDate(e.Due)
	return true, nil
}

// SetTaskStatus moves a task to another configured status.
func SetTaskStatus(ds *domain.Dataset, id string, status domain.TaskStatus, statuses domain.StatusSet) (bool, error) {
	if err := statuses.Validate(status); err != nil {
		return false, err
	}
	t := ds.Task(id)
	if t == nil || t.Status == status {
		return false, nil
	}
	t.Status = status
	return true, nil
}

// SetTaskDetails updates the free-form fields that bulk edits leave alone.
func SetTaskDetails(ds *domain.Dataset, id string, priority domain.Priority, description string) bool {
	t := ds.Task(id)
	if t == nil || (t.Priority == priority && t.Description == description) {
		return false
	}
	t.Priority = priority
	t.Description = description
	return true
}

func checkWBSRef(ds *domain.Dataset, wbsID *string) error {
	if wbsID != nil && ds.Node(*wbsID) == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownWBS, *wbsID)
	}
	return nil
}
