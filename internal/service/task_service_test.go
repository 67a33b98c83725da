package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/mutation"
	"github.com/alexanderramin/wbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Add(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	svc := NewTaskService(s)
	ctx := context.Background()

	task, err := svc.Add(ctx, mutation.NewTask{Title: "write tests", WBSID: domain.StrPtr("C"),
		Priority: domain.PriorityMedium, Due: dates.MustParse("2024-02-20")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, task.Status)
	assert.NotNil(t, repo.Stored().Task(task.ID))

	_, err = svc.Add(ctx, mutation.NewTask{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	_, err = svc.Add(ctx, mutation.NewTask{Title: "x", Status: "BLOCKED"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, 1, repo.Saves)
}

func TestTaskService_CustomStatuses(t *testing.T) {
	repo := testutil.NewMemoryDatasetRepo(nil)
	s, err := OpenSession(context.Background(), repo, SessionOptions{Statuses: domain.StatusSet{"OPEN", "CLOSED"}})
	require.NoError(t, err)
	svc := NewTaskService(s)

	task, err := svc.Add(context.Background(), mutation.NewTask{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatus("OPEN"), task.Status)

	_, err = svc.SetStatus(context.Background(), task.ID, domain.StatusDone)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	changed, err := svc.SetStatus(context.Background(), task.ID, "CLOSED")
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestTaskService_UpdateBlankTitleLeavesTaskUnchanged(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	svc := NewTaskService(s)
	before := s.Dataset().Task("t-b").Clone()

	changed, err := svc.Update(context.Background(), "t-b", mutation.TaskEdit{Title: "   ", WBSID: domain.StrPtr("A")})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.False(t, changed)
	assert.Equal(t, before, s.Dataset().Task("t-b"))
	assert.Equal(t, 0, repo.Saves)
}

func TestTaskService_ListGetDelete(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	svc := NewTaskService(s)
	ctx := context.Background()

	assert.Len(t, svc.List(ctx, nil), 3)
	onB := svc.List(ctx, domain.StrPtr("B"))
	require.Len(t, onB, 1)
	assert.Equal(t, "t-b", onB[0].ID)

	_, err := svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownID)

	removed, err := svc.Delete(ctx, []string{"t-b", "nope"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"t-c", "t-x"}, repo.Stored().TaskIDs())

	removed, err = svc.Delete(ctx, []string{"t-b"})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, repo.Saves)
}

func TestTaskService_SetDetails(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	changed, err := NewTaskService(s).SetDetails(context.Background(), "t-x", domain.PriorityLow, "later")
	require.NoError(t, err)
	assert.True(t, changed)
	stored := repo.Stored().Task("t-x")
	assert.Equal(t, domain.PriorityLow, stored.Priority)
	assert.Equal(t, "later", stored.Description)
}

func TestTaskService_ApplyBatch(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	res, err := NewTaskService(s).ApplyBatch(context.Background(), []mutation.TaskRowEdit{
		{ID: "t-b", Title: "design v2", WBSID: domain.StrPtr("B")},
		{ID: "t-c", Delete: true},
		{ID: "t-x", Title: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "1 updated, 1 deleted", res.Summary())
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "t-x", res.Rejected[0].ID)

	stored := repo.Stored()
	assert.Equal(t, "design v2", stored.Task("t-b").Title)
	assert.Nil(t, stored.Task("t-c"))
	assert.Equal(t, "triage", stored.Task("t-x").Title)
}
