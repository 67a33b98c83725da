package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/mutation"
	"github.com/alexanderramin/wbs/internal/tasks"
)

type taskService struct {
	session *Session
}

func NewTaskService(session *Session) TaskService {
	return &taskService{session: session}
}

func (s *taskService) Add(ctx context.Context, in mutation.NewTask) (task *domain.Task, err error) {
	fields := map[string]any{"wbs_id": domain.StrOrEmpty(in.WBSID)}
	_, err = s.session.mutate(ctx, "task-add", fields, func(ds *domain.Dataset) (bool, error) {
		var addErr error
		task, addErr = mutation.AddTask(ds, in, s.session.statuses)
		return addErr == nil, addErr
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	t := tasks.Find(s.session.data.Tasks, id)
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrUnknownID)
	}
	return t, nil
}

func (s *taskService) List(ctx context.Context, wbsID *string) []*domain.Task {
	return tasks.FilterByWBS(s.session.data.Tasks, wbsID)
}

func (s *taskService) Update(ctx context.Context, id string, edit mutation.TaskEdit) (bool, error) {
	return s.session.mutate(ctx, "task-update", map[string]any{"id": id}, func(ds *domain.Dataset) (bool, error) {
		return mutation.UpdateTask(ds, id, edit)
	})
}

func (s *taskService) SetStatus(ctx context.Context, id string, status domain.TaskStatus) (bool, error) {
	fields := map[string]any{"id": id, "status": string(status)}
	return s.session.mutate(ctx, "task-status", fields, func(ds *domain.Dataset) (bool, error) {
		return mutation.SetTaskStatus(ds, id, status, s.session.statuses)
	})
}

func (s *taskService) SetDetails(ctx context.Context, id string, priority domain.Priority, description string) (bool, error) {
	return s.session.mutate(ctx, "task-details", map[string]any{"id": id}, func(ds *domain.Dataset) (bool, error) {
		return mutation.SetTaskDetails(ds, id, priority, description), nil
	})
}

func (s *taskService) Delete(ctx context.Context, ids []string) (removed int, err error) {
	fields := map[string]any{"targets": len(ids)}
	_, err = s.session.mutate(ctx, "task-delete", fields, func(ds *domain.Dataset) (bool, error) {
		removed = mutation.DeleteTasks(ds, ids)
		fields["removed"] = removed
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *taskService) ApplyBatch(ctx context.Context, rows []mutation.TaskRowEdit) (res *mutation.BatchResult, err error) {
	fields := map[string]any{"rows": len(rows)}
	_, err = s.session.mutate(ctx, "task-batch", fields, func(ds *domain.Dataset) (bool, error) {
		res = mutation.ApplyTaskBatch(ds, rows)
		fields["updated"] = res.FieldUpdates
		fields["deleted"] = res.Deleted
		fields["rejected"] = len(res.Rejected)
		return res.Changed(), nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
