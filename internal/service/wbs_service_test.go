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

func TestWBSService_AddAndGet(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	svc := NewWBSService(s)
	ctx := context.Background()

	n, err := svc.Add(ctx, mutation.NewNode{Name: "Review", ParentID: domain.StrPtr("D"),
		PlannedStart: dates.MustParse("2024-04-10"), PlannedEnd: dates.MustParse("2024-04-12")})
	require.NoError(t, err)

	got, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Review", got.Name)
	assert.NotNil(t, repo.Stored().Node(n.ID))

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownID)
}

func TestWBSService_Tree(t *testing.T) {
	s, _ := openTestSession(t, testutil.NewTestDataset())
	entries := NewWBSService(s).Tree(context.Background())

	var ids []string
	var depths []int
	for _, e := range entries {
		ids = append(ids, e.Node.ID)
		depths = append(depths, e.Depth)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids)
	assert.Equal(t, []int{0, 1, 2, 0}, depths)
}

func TestWBSService_Move(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	svc := NewWBSService(s)
	ctx := context.Background()

	_, err := svc.Move(ctx, "A", domain.StrPtr("C"))
	assert.ErrorIs(t, err, domain.ErrInvalidReparent)
	assert.Equal(t, 0, repo.Saves)

	changed, err := svc.Move(ctx, "C", domain.StrPtr("D"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "D", *repo.Stored().Node("C").ParentID)

	changed, err = svc.Move(ctx, "C", nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, s.Dataset().Node("C").ParentID)
}

func TestWBSService_SetDates(t *testing.T) {
	s, _ := openTestSession(t, testutil.NewTestDataset())
	svc := NewWBSService(s)
	ctx := context.Background()

	edit := mutation.DatesOf(s.Dataset().Node("C"))
	edit.ActualEnd = dates.MustParse("2024-02-01")
	changed, err := svc.SetDates(ctx, "C", edit)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, s.Dataset().Node("C").InProgress())

	changed, err = svc.SetDates(ctx, "nope", edit)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestWBSService_DeleteCascadeUnassignsTasks(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	removed, err := NewWBSService(s).Delete(context.Background(), []string{"B"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	stored := repo.Stored()
	assert.Equal(t, []string{"A", "D"}, stored.NodeIDs())
	for _, task := range stored.Tasks {
		assert.Nil(t, task.WBSID, task.Title)
	}
}

func TestWBSService_ApplyBatch(t *testing.T) {
	s, repo := openTestSession(t, testutil.NewTestDataset())
	svc := NewWBSService(s)

	res, err := svc.ApplyBatch(context.Background(), []mutation.WBSRowEdit{
		{ID: "D", Delete: true},
		{ID: "A", ParentID: domain.StrPtr("D")},
		{ID: "C", ParentID: domain.StrPtr("A"), Dates: mutation.DatesOf(s.Dataset().Node("C"))},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, 1, res.ReparentUpdates)
	require.Len(t, res.Rejected, 1)
	assert.ErrorIs(t, res.Rejected[0].Err, domain.ErrParentDeleted)
	assert.Equal(t, 1, repo.Saves)
	assert.Equal(t, "A", *repo.Stored().Node("C").ParentID)
}

func TestWBSService_Check(t *testing.T) {
	ds := testutil.NewTestDataset()
	ds.WBS = append(ds.WBS, testutil.NewTestNode("stray", testutil.WithParentID("gone")))
	ds.Tasks = append(ds.Tasks, testutil.NewTestTask("lost", testutil.WithWBS("missing")))
	s, _ := openTestSession(t, ds)

	report := NewWBSService(s).Check(context.Background())
	assert.False(t, report.OK())
	require.Len(t, report.Orphans, 1)
	assert.Equal(t, "stray", report.Orphans[0].Name)
	require.Len(t, report.DanglingTasks, 1)
	assert.Equal(t, "lost", report.DanglingTasks[0].Title)

	clean, _ := openTestSession(t, testutil.NewTestDataset())
	assert.True(t, NewWBSService(clean).Check(context.Background()).OK())
}
