package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteDatasetRepo(t *testing.T) *SQLiteDatasetRepo {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewSQLiteDatasetRepo(database, testutil.NewTestUoW(database), domain.DefaultStatuses)
}

func TestSQLiteDatasetRepo_EmptyStore(t *testing.T) {
	repo := setupSQLiteDatasetRepo(t)

	ds, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.WBS)
	assert.Empty(t, ds.Tasks)
}

func TestSQLiteDatasetRepo_SaveAndLoad(t *testing.T) {
	repo := setupSQLiteDatasetRepo(t)
	ctx := context.Background()

	want := testutil.NewTestDataset()
	want.Tasks[0].Priority = domain.PriorityHigh
	want.Tasks[0].Description = "first pass"
	want.Tasks[0].Due = dates.MustParse("2024-02-01")

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteDatasetRepo_SaveReplacesAndKeepsOrder(t *testing.T) {
	repo := setupSQLiteDatasetRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestDataset()))

	next := &domain.Dataset{
		WBS: []*domain.WBSNode{
			testutil.NewTestNode("z", testutil.WithNodeID("z")),
			testutil.NewTestNode("a", testutil.WithNodeID("a")),
		},
		Tasks: []*domain.Task{},
	}
	require.NoError(t, repo.Save(ctx, next))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, got.NodeIDs())
	assert.Empty(t, got.Tasks)
}

func TestSQLiteDatasetRepo_DanglingReferencesRoundTrip(t *testing.T) {
	repo := setupSQLiteDatasetRepo(t)
	ctx := context.Background()

	ds := &domain.Dataset{
		WBS:   []*domain.WBSNode{testutil.NewTestNode("orphan", testutil.WithParentID("gone"))},
		Tasks: []*domain.Task{testutil.NewTestTask("lost", testutil.WithWBS("missing"))},
	}
	require.NoError(t, repo.Save(ctx, ds))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gone", *got.WBS[0].ParentID)
	assert.Equal(t, "missing", *got.Tasks[0].WBSID)
}

func TestSQLiteDatasetRepo_SaveRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	good := NewSQLiteDatasetRepo(database, testutil.NewTestUoW(database), domain.DefaultStatuses)
	original := testutil.NewTestDataset()
	require.NoError(t, good.Save(ctx, original))

	// Exec 1 clears wbs_nodes, 2 inserts the first node, 3 fails.
	injected := errors.New("disk full")
	failing := NewSQLiteDatasetRepo(database, &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: injected}, domain.DefaultStatuses)
	err := failing.Save(ctx, &domain.Dataset{
		WBS: []*domain.WBSNode{
			testutil.NewTestNode("one"),
			testutil.NewTestNode("two"),
		},
	})
	require.ErrorIs(t, err, injected)

	got, err := good.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, got, "failed save must leave the store untouched")
}

func TestSQLiteDatasetRepo_RejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name    string
		stmt    string
		wantErr string
	}{
		{
			name:    "unknown status",
			stmt:    `INSERT INTO tasks (id, title, status, position) VALUES ('t1', 'Write', 'BLOCKED', 1)`,
			wantErr: `"BLOCKED"`,
		},
		{
			name:    "unknown priority",
			stmt:    `INSERT INTO tasks (id, title, status, priority, position) VALUES ('t1', 'Write', 'TODO', 'urgent', 1)`,
			wantErr: `"urgent"`,
		},
		{
			name:    "bad planned start",
			stmt:    `INSERT INTO wbs_nodes (id, name, planned_start, position) VALUES ('n1', 'Design', 'not-a-date', 1)`,
			wantErr: "planned_start",
		},
		{
			name:    "bad due date",
			stmt:    `INSERT INTO tasks (id, title, status, due, position) VALUES ('t1', 'Write', 'TODO', '03/10/2024', 1)`,
			wantErr: "due",
		},
		{
			name:    "blank name",
			stmt:    `INSERT INTO wbs_nodes (id, name, position) VALUES ('n1', '  ', 1)`,
			wantErr: "name is required",
		},
		{
			name: "parent cycle",
			stmt: `INSERT INTO wbs_nodes (id, name, parent_id, position)
				VALUES ('n1', 'One', 'n2', 1), ('n2', 'Two', 'n1', 2)`,
			wantErr: "parent cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupSQLiteDatasetRepo(t)
			_, err := repo.db.Exec(tt.stmt)
			require.NoError(t, err)

			_, err = repo.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSQLiteDatasetRepo_BadDateSurvivesFailedLoad(t *testing.T) {
	repo := setupSQLiteDatasetRepo(t)
	ctx := context.Background()
	_, err := repo.db.Exec(`INSERT INTO wbs_nodes (id, name, planned_start, position) VALUES ('n1', 'Design', '2024-13-01', 1)`)
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	require.Error(t, err)

	var raw string
	require.NoError(t, repo.db.QueryRow(`SELECT planned_start FROM wbs_nodes WHERE id = 'n1'`).Scan(&raw))
	assert.Equal(t, "2024-13-01", raw)
}

func TestSQLiteDatasetRepo_BlankStatusTakesDefault(t *testing.T) {
	repo := setupSQLiteDatasetRepo(t)
	_, err := repo.db.Exec(`INSERT INTO tasks (id, title, status, priority, position) VALUES ('t1', 'Write', '', 'HIGH', 1)`)
	require.NoError(t, err)

	ds, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Tasks, 1)
	assert.Equal(t, domain.StatusTodo, ds.Tasks[0].Status)
	assert.Equal(t, domain.PriorityHigh, ds.Tasks[0].Priority)
}
