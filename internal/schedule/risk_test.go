package schedule

import (
	"testing"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRisk(t *testing.T) {
	d := dates.MustParse
	today := *d("2024-03-10")

	tests := []struct {
		name       string
		in         RiskInput
		wantLevel  domain.RiskLevel
		wantReason string
	}{
		{
			name:       "finished late",
			in:         RiskInput{PlannedEnd: d("2024-03-01"), ActualStart: d("2024-02-01"), ActualEnd: d("2024-03-05")},
			wantLevel:  domain.RiskDone,
			wantReason: "finished 4 days late",
		},
		{
			name:       "finished without plan",
			in:         RiskInput{ActualEnd: d("2024-03-05")},
			wantLevel:  domain.RiskDone,
			wantReason: "finished",
		},
		{
			name:       "no planned end",
			in:         RiskInput{PlannedStart: d("2024-01-01")},
			wantLevel:  domain.RiskOnTrack,
			wantReason: "no planned end",
		},
		{
			name:       "overdue",
			in:         RiskInput{PlannedEnd: d("2024-03-08"), ActualStart: d("2024-03-01")},
			wantLevel:  domain.RiskCritical,
			wantReason: "overdue by 2 days",
		},
		{
			name:       "missed start",
			in:         RiskInput{PlannedStart: d("2024-03-05"), PlannedEnd: d("2024-03-31")},
			wantLevel:  domain.RiskAtRisk,
			wantReason: "not started, planned 5 days ago",
		},
		{
			name:      "missed start close to deadline",
			in:        RiskInput{PlannedStart: d("2024-03-01"), PlannedEnd: d("2024-03-12")},
			wantLevel: domain.RiskCritical,
		},
		{
			name: "behind on tasks",
			in: RiskInput{PlannedStart: d("2024-02-29"), PlannedEnd: d("2024-03-20"), ActualStart: d("2024-02-29"),
				DoneTasks: 0, TotalTasks: 4},
			wantLevel:  domain.RiskAtRisk,
			wantReason: "0% of tasks done, 50% of time elapsed",
		},
		{
			name: "due soon with open tasks",
			in: RiskInput{PlannedStart: d("2024-03-01"), PlannedEnd: d("2024-03-12"), ActualStart: d("2024-03-01"),
				DoneTasks: 9, TotalTasks: 10},
			wantLevel:  domain.RiskAtRisk,
			wantReason: "due in 2 days with open tasks",
		},
		{
			name: "on pace",
			in: RiskInput{PlannedStart: d("2024-02-29"), PlannedEnd: d("2024-03-20"), ActualStart: d("2024-02-29"),
				DoneTasks: 1, TotalTasks: 4},
			wantLevel:  domain.RiskOnTrack,
			wantReason: "10 days left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Today = today
			got := ComputeRisk(tt.in)
			assert.Equal(t, tt.wantLevel, got.Level)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, got.Reason)
			}
		})
	}
}

func TestComputeRisk_DaysLeftAndProgress(t *testing.T) {
	res := ComputeRisk(RiskInput{
		Today:        time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC),
		PlannedStart: dates.MustParse("2024-03-01"),
		PlannedEnd:   dates.MustParse("2024-03-21"),
		ActualStart:  dates.MustParse("2024-03-01"),
		DoneTasks:    1,
		TotalTasks:   2,
	})
	require.NotNil(t, res.DaysLeft)
	assert.Equal(t, 11, *res.DaysLeft)
	assert.InDelta(t, 50.0, res.ProgressPct, 0.001)
	assert.InDelta(t, 45.0, res.TimeElapsedPct, 0.001)
}

func TestRisks_SortByUrgency(t *testing.T) {
	ds := testutil.NewTestDataset()

	risks := Risks(ds, *dates.MustParse("2024-03-10"))
	require.Len(t, risks, 4)
	assert.Equal(t, 2, risks[2].Depth)

	SortByUrgency(risks)
	var order []string
	for _, r := range risks {
		order = append(order, r.Node.ID)
	}
	assert.Equal(t, []string{"B", "A", "D", "C"}, order)
	assert.Equal(t, domain.RiskCritical, risks[0].Level)
	assert.Equal(t, "overdue by 24 days", risks[0].Reason)
}

func TestRisks_CountsOnlyOwnTasks(t *testing.T) {
	node := testutil.NewTestNode("n", testutil.WithNodeID("n"),
		testutil.WithPlanned("2024-03-01", "2024-03-31"), testutil.WithActual("2024-03-01", ""))
	ds := &domain.Dataset{
		WBS: []*domain.WBSNode{node},
		Tasks: []*domain.Task{
			testutil.NewTestTask("a", testutil.WithWBS("n"), testutil.WithStatus(domain.StatusDone)),
			testutil.NewTestTask("b", testutil.WithWBS("n")),
			testutil.NewTestTask("skip", testutil.WithWBS("n"), testutil.WithStatus(domain.StatusIgnore)),
			testutil.NewTestTask("other", testutil.WithWBS("x"), testutil.WithStatus(domain.StatusDone)),
		},
	}

	risks := Risks(ds, *dates.MustParse("2024-03-10"))
	require.Len(t, risks, 1)
	assert.InDelta(t, 50.0, risks[0].ProgressPct, 0.001)
}
