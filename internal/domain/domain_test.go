package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDataset_CloneIsDeep(t *testing.T) {
	parent := "a"
	ds := &Dataset{
		WBS: []*WBSNode{
			{ID: "a", Name: "Phase A"},
			{ID: "b", Name: "Design", ParentID: &parent, PlannedStart: day(2024, 1, 1)},
		},
		Tasks: []*Task{{ID: "t1", Title: "Interview", Status: StatusTodo, WBSID: &parent, Due: day(2024, 2, 1)}},
	}

	c := ds.Clone()
	*c.WBS[1].ParentID = "zzz"
	*c.WBS[1].PlannedStart = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Tasks[0].Title = "changed"
	*c.Tasks[0].WBSID = "zzz"

	assert.Equal(t, "a", *ds.WBS[1].ParentID)
	assert.Equal(t, day(2024, 1, 1), ds.WBS[1].PlannedStart)
	assert.Equal(t, "Interview", ds.Tasks[0].Title)
	assert.Equal(t, "a", *ds.Tasks[0].WBSID)
}

func TestDataset_Lookups(t *testing.T) {
	ds := &Dataset{
		WBS:   []*WBSNode{{ID: "a"}, {ID: "b"}},
		Tasks: []*Task{{ID: "t1"}},
	}
	assert.Equal(t, []string{"a", "b"}, ds.NodeIDs())
	assert.Equal(t, []string{"t1"}, ds.TaskIDs())
	assert.NotNil(t, ds.Node("b"))
	assert.Nil(t, ds.Node("c"))
	assert.NotNil(t, ds.Task("t1"))
	assert.Nil(t, ds.Task("t2"))
	assert.Len(t, ds.NodeIndex(), 2)
	assert.Len(t, ds.TaskIndex(), 1)
}

func TestWBSNode_IsTopLevel(t *testing.T) {
	assert.True(t, (&WBSNode{ID: "a"}).IsTopLevel())
	assert.False(t, (&WBSNode{ID: "b", ParentID: StrPtr("a")}).IsTopLevel())
}

func TestWBSNode_InProgress(t *testing.T) {
	n := &WBSNode{ActualStart: day(2024, 1, 1)}
	assert.True(t, n.InProgress())
	n.ActualEnd = day(2024, 1, 5)
	assert.False(t, n.InProgress())
	assert.False(t, (&WBSNode{}).InProgress())
}

func TestValidateTitle(t *testing.T) {
	assert.ErrorIs(t, ValidateTitle("   "), ErrEmptyTitle)
	assert.ErrorIs(t, ValidateTitle(""), ErrEmptyTitle)
	assert.NoError(t, ValidateTitle(" ok "))
}

func TestNewStatusSet(t *testing.T) {
	assert.Equal(t, DefaultStatuses, NewStatusSet(nil))

	s := NewStatusSet([]string{"open", " ", "closed", "open"})
	require.Len(t, s, 2)
	assert.Equal(t, TaskStatus("open"), s.Default())
	assert.True(t, s.Contains("closed"))
	assert.ErrorIs(t, s.Validate("TODO"), ErrInvalidStatus)
	assert.NoError(t, s.Validate("closed"))
	assert.Equal(t, "open|closed", s.String())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" High ")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	p, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNone, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestStrPtrHelpers(t *testing.T) {
	assert.Nil(t, StrPtr(""))
	assert.Equal(t, "x", *StrPtr("x"))
	assert.True(t, StrPtrEqual(nil, nil))
	assert.True(t, StrPtrEqual(StrPtr("a"), StrPtr("a")))
	assert.False(t, StrPtrEqual(StrPtr("a"), nil))
	assert.Equal(t, "", StrOrEmpty(nil))
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
}
