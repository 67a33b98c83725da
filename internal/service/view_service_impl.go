package service

import (
	"context"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/filter"
	"github.com/alexanderramin/wbs/internal/schedule"
	"github.com/alexanderramin/wbs/internal/tasks"
)

type viewService struct {
	session *Session
}

func NewViewService(session *Session) ViewService {
	return &viewService{session: session}
}

func (s *viewService) Filtered(ctx context.Context, c filter.Criteria) *domain.Dataset {
	return filter.Apply(s.session.data, c)
}

func (s *viewService) Schedule(ctx context.Context, c filter.Criteria, opts schedule.Options) (view *schedule.View, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"filtered": !c.IsZero()}
	defer func() {
		if view != nil {
			fields["rows"] = len(view.Rows)
		}
		s.session.observe(ctx, "schedule", startedAt, fields, err)
	}()

	ds := filter.Apply(s.session.data, c)
	return schedule.Build(ds.WBS, s.session.Today(), opts)
}

// Board groups the filtered tasks into status columns, optionally limited
// to the tasks of one WBS node.
func (s *viewService) Board(ctx context.Context, c filter.Criteria, wbsID *string) []tasks.Column {
	ds := filter.Apply(s.session.data, c)
	return tasks.GroupByStatus(tasks.FilterByWBS(ds.Tasks, wbsID), s.session.statuses)
}

func (s *viewService) Summary(ctx context.Context, c filter.Criteria) []tasks.StatusCount {
	ds := filter.Apply(s.session.data, c)
	return tasks.Summarize(ds.Tasks, s.session.statuses)
}

func (s *viewService) Label(ctx context.Context, wbsID *string) string {
	return tasks.Label(s.session.data.NodeIndex(), wbsID)
}

// Risks grades the filtered nodes against today, most urgent first.
func (s *viewService) Risks(ctx context.Context, c filter.Criteria) []schedule.NodeRisk {
	startedAt := time.Now().UTC()
	risks := schedule.Risks(filter.Apply(s.session.data, c), s.session.Today())
	schedule.SortByUrgency(risks)

	flagged := 0
	for _, r := range risks {
		if r.Level == domain.RiskCritical || r.Level == domain.RiskAtRisk {
			flagged++
		}
	}
	s.session.observe(ctx, "risks", startedAt, map[string]any{"nodes": len(risks), "flagged": flagged}, nil)
	return risks
}
