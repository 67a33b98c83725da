package domain

import "errors"

var (
	// ErrInvalidReparent rejects a parent change that would make a node its
	// own ancestor.
	ErrInvalidReparent = errors.New("node cannot be placed under itself or one of its descendants")
	ErrUnknownParent   = errors.New("parent node does not exist")
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrEmptyName       = errors.New("WBS name cannot be empty")
	// ErrUnknownID is only returned by single-record lookups. Deletes and
	// updates that target a missing id are no-ops.
	ErrUnknownID        = errors.New("no record with that id")
	ErrUnknownWBS       = errors.New("task references a WBS node that does not exist")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidDateRange = errors.New("end date is before start date")
	// ErrParentDeleted rejects a reparent onto a node removed in the same batch.
	ErrParentDeleted = errors.New("parent is being deleted in the same batch")
	// ErrNoSchedule means no WBS node carries any date, so no chart window
	// can be derived.
	ErrNoSchedule    = errors.New("no WBS node has a date")
	ErrInvalidWindow = errors.New("window start is after window end")
)
