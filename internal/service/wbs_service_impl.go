package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/mutation"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

type wbsService struct {
	session *Session
}

func NewWBSService(session *Session) WBSService {
	return &wbsService{session: session}
}

func (s *wbsService) Add(ctx context.Context, in mutation.NewNode) (node *domain.WBSNode, err error) {
	_, err = s.session.mutate(ctx, "wbs-add", map[string]any{"name": in.Name}, func(ds *domain.Dataset) (bool, error) {
		var addErr error
		node, addErr = mutation.AddNode(ds, in)
		return addErr == nil, addErr
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (s *wbsService) Get(ctx context.Context, id string) (*domain.WBSNode, error) {
	n := s.session.data.Node(id)
	if n == nil {
		return nil, fmt.Errorf("wbs node %s: %w", id, domain.ErrUnknownID)
	}
	return n, nil
}

func (s *wbsService) List(ctx context.Context) []*domain.WBSNode {
	return s.session.data.WBS
}

func (s *wbsService) Tree(ctx context.Context) []wbstree.Entry {
	return wbstree.FlattenDepthFirst(s.session.data.WBS)
}

func (s *wbsService) Rename(ctx context.Context, id, name string) (bool, error) {
	return s.session.mutate(ctx, "wbs-rename", map[string]any{"id": id}, func(ds *domain.Dataset) (bool, error) {
		return mutation.RenameNode(ds, id, name)
	})
}

func (s *wbsService) SetDates(ctx context.Context, id string, edit mutation.DateEdit) (bool, error) {
	return s.session.mutate(ctx, "wbs-dates", map[string]any{"id": id}, func(ds *domain.Dataset) (bool, error) {
		n := ds.Node(id)
		if n == nil {
			return false, nil
		}
		return mutation.ApplyDateEdit(n, edit), nil
	})
}

func (s *wbsService) Move(ctx context.Context, id string, parentID *string) (bool, error) {
	fields := map[string]any{"id": id, "parent": domain.StrOrEmpty(parentID)}
	return s.session.mutate(ctx, "wbs-move", fields, func(ds *domain.Dataset) (bool, error) {
		return mutation.ApplyReparent(ds.WBS, id, parentID)
	})
}

func (s *wbsService) Delete(ctx context.Context, ids []string) (removed int, err error) {
	fields := map[string]any{"targets": len(ids)}
	_, err = s.session.mutate(ctx, "wbs-delete", fields, func(ds *domain.Dataset) (bool, error) {
		removed = mutation.DeleteWBSCascade(ds, ids)
		fields["removed"] = removed
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *wbsService) ApplyBatch(ctx context.Context, rows []mutation.WBSRowEdit) (res *mutation.BatchResult, err error) {
	fields := map[string]any{"rows": len(rows)}
	_, err = s.session.mutate(ctx, "wbs-batch", fields, func(ds *domain.Dataset) (bool, error) {
		res = mutation.ApplyWBSBatch(ds, rows)
		fields["updated"] = res.FieldUpdates
		fields["moved"] = res.ReparentUpdates
		fields["deleted"] = res.Deleted
		fields["rejected"] = len(res.Rejected)
		return res.Changed(), nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *wbsService) Check(ctx context.Context) IntegrityReport {
	startedAt := time.Now().UTC()
	ds := s.session.data
	report := IntegrityReport{
		Orphans:       wbstree.Orphans(ds.WBS),
		DanglingTasks: tasks.Dangling(ds.Tasks, ds.NodeIndex()),
	}
	s.session.observe(ctx, "wbs-check", startedAt, map[string]any{
		"orphans":  len(report.Orphans),
		"dangling": len(report.DanglingTasks),
	}, nil)
	return report
}
