package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID          string
	Title       string
	Status      TaskStatus
	WBSID       *string
	Priority    Priority
	Due         *time.Time
	Description string
}

// IsUnassigned reports whether the task references no WBS node.
func (t *Task) IsUnassigned() bool {
	return t.WBSID == nil
}

// ValidateTitle returns ErrEmptyTitle when the title is blank after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.WBSID = cloneStr(t.WBSID)
	c.Due = cloneTime(t.Due)
	return &c
}
