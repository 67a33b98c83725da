package domain

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	StatusTodo   TaskStatus = "TODO"
	StatusDoing  TaskStatus = "DOING"
	StatusDone   TaskStatus = "DONE"
	StatusIgnore TaskStatus = "IGNORE"
)

// StatusSet is the ordered, configured list of task statuses. Order drives
// summaries and board columns.
type StatusSet []TaskStatus

// DefaultStatuses is used when configuration does not override the set.
var DefaultStatuses = StatusSet{StatusTodo, StatusDoing, StatusDone, StatusIgnore}

// NewStatusSet builds a set from configured labels, skipping blanks and
// duplicates. An empty input yields DefaultStatuses.
func NewStatusSet(labels []string) StatusSet {
	seen := make(map[string]bool, len(labels))
	var out StatusSet
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, TaskStatus(l))
	}
	if len(out) == 0 {
		return append(StatusSet(nil), DefaultStatuses...)
	}
	return out
}

// Contains reports whether s is a configured status.
func (s StatusSet) Contains(status TaskStatus) bool {
	for _, v := range s {
		if v == status {
			return true
		}
	}
	return false
}

// Default is the status assigned to new tasks that do not name one.
func (s StatusSet) Default() TaskStatus {
	if len(s) == 0 {
		return StatusTodo
	}
	return s[0]
}

// Validate returns ErrInvalidStatus unless status is in the set.
func (s StatusSet) Validate(status TaskStatus) error {
	if !s.Contains(status) {
		return fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidStatus, status, s)
	}
	return nil
}

func (s StatusSet) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = string(v)
	}
	return strings.Join(parts, "|")
}

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority labels.
var ValidPriorities = map[string]bool{
	"": true, "high": true, "medium": true, "low": true,
}

// ParsePriority normalises a priority label. Unknown labels are rejected.
func ParsePriority(s string) (Priority, error) {
	p := strings.ToLower(strings.TrimSpace(s))
	if !ValidPriorities[p] {
		return PriorityNone, fmt.Errorf("invalid priority %q (expected high|medium|low)", s)
	}
	return Priority(p), nil
}

// RiskLevel grades how a WBS node is tracking against its planned dates.
type RiskLevel string

const (
	RiskDone     RiskLevel = "done"
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)
