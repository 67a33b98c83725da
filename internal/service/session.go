package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/repository"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// SessionOptions configures a Session. Zero values select defaults.
type SessionOptions struct {
	Statuses domain.StatusSet
	Clock    dates.Clock
	Logger   *slog.Logger
}

// Session is the single authoritative store for one process. It owns the
// loaded dataset; every successful mutation is saved through the repo
// before the call returns. A failed save puts the dataset back the way it
// was before the mutation.
type Session struct {
	repo     repository.DatasetRepo
	data     *domain.Dataset
	statuses domain.StatusSet
	clock    dates.Clock
	logger   *slog.Logger
	observer UseCaseObserver
}

// OpenSession loads the dataset and reports integrity warnings. A parent
// cycle makes the data unusable and is returned as an error.
func OpenSession(ctx context.Context, repo repository.DatasetRepo, opts SessionOptions, observers ...UseCaseObserver) (*Session, error) {
	s := &Session{
		repo:     repo,
		statuses: opts.Statuses,
		clock:    opts.Clock,
		logger:   opts.Logger,
		observer: useCaseObserverOrNoop(observers),
	}
	if len(s.statuses) == 0 {
		s.statuses = domain.DefaultStatuses
	}
	if s.clock == nil {
		s.clock = dates.SystemClock{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	ds, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	if cycle := wbstree.FindCycle(ds.WBS); cycle != nil {
		return nil, fmt.Errorf("loading dataset: %w: cycle through %s",
			domain.ErrInvalidReparent, strings.Join(cycle, " -> "))
	}
	s.data = ds
	s.warnIntegrity(ctx)
	return s, nil
}

func (s *Session) warnIntegrity(ctx context.Context) {
	for _, n := range wbstree.Orphans(s.data.WBS) {
		s.logger.WarnContext(ctx, "wbs node has a missing parent; shown at top level",
			"id", n.ID, "name", n.Name, "parent", domain.StrOrEmpty(n.ParentID))
	}
	for _, t := range tasks.Dangling(s.data.Tasks, s.data.NodeIndex()) {
		s.logger.WarnContext(ctx, "task references a missing wbs node",
			"id", t.ID, "title", t.Title, "wbs_id", domain.StrOrEmpty(t.WBSID))
	}
}

// Dataset returns the live dataset. Callers must not modify it.
func (s *Session) Dataset() *domain.Dataset { return s.data }

func (s *Session) Statuses() domain.StatusSet { return s.statuses }

func (s *Session) Today() time.Time { return s.clock.Today() }

// mutate runs fn against the dataset and saves when fn reports a change.
// On any error the dataset is restored from a snapshot taken beforehand.
func (s *Session) mutate(ctx context.Context, name string, fields map[string]any, fn func(ds *domain.Dataset) (bool, error)) (changed bool, err error) {
	startedAt := time.Now().UTC()
	if fields == nil {
		fields = map[string]any{}
	}
	defer func() {
		fields["changed"] = changed
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	snapshot := s.data.Clone()
	changed, err = fn(s.data)
	if err != nil {
		s.data = snapshot
		return false, err
	}
	if !changed {
		return false, nil
	}
	if err = s.repo.Save(ctx, s.data); err != nil {
		s.data = snapshot
		return false, fmt.Errorf("saving after %s: %w", name, err)
	}
	return true, nil
}

// observe records a read-only use case.
func (s *Session) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
