package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/document"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// SQLiteDatasetRepo stores the dataset in the wbs_nodes and tasks tables.
// Save rewrites both tables in a single transaction.
type SQLiteDatasetRepo struct {
	db       *sql.DB
	uow      db.UnitOfWork
	statuses domain.StatusSet
}

func NewSQLiteDatasetRepo(conn *sql.DB, uow db.UnitOfWork, statuses domain.StatusSet) *SQLiteDatasetRepo {
	return &SQLiteDatasetRepo{db: conn, uow: uow, statuses: statuses}
}

// Load reads both tables and applies the same checks as a JSON load:
// an unparseable date, blank name, unknown status or priority, or a parent
// cycle fails the load.
func (r *SQLiteDatasetRepo) Load(ctx context.Context) (*domain.Dataset, error) {
	nodes, err := NewSQLiteWBSNodeRepo(r.db).List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := NewSQLiteTaskRepo(r.db).List(ctx)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, n := range nodes {
		if strings.TrimSpace(n.Name) == "" {
			errs = append(errs, fmt.Errorf("wbs node %q: name is required", n.ID))
		}
	}
	if cycle := wbstree.FindCycle(nodes); cycle != nil {
		errs = append(errs, fmt.Errorf("wbs_nodes: parent cycle through %s", strings.Join(cycle, " -> ")))
	}
	for _, t := range tasks {
		if t.Status == "" {
			t.Status = r.statuses.Default()
		} else if err := r.statuses.Validate(t.Status); err != nil {
			errs = append(errs, fmt.Errorf("task %q: %w", t.ID, err))
		}
		p, err := domain.ParsePriority(string(t.Priority))
		if err != nil {
			errs = append(errs, fmt.Errorf("task %q: %w", t.ID, err))
		}
		t.Priority = p
	}
	if err := document.FormatErrors(errs); err != nil {
		return nil, fmt.Errorf("sqlite store: %w", err)
	}
	return &domain.Dataset{WBS: nodes, Tasks: tasks}, nil
}

func (r *SQLiteDatasetRepo) Save(ctx context.Context, ds *domain.Dataset) error {
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteWBSNodeRepo(tx).ReplaceAll(ctx, ds.WBS); err != nil {
			return err
		}
		return NewSQLiteTaskRepo(tx).ReplaceAll(ctx, ds.Tasks)
	})
	if err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}
	return nil
}
