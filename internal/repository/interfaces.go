package repository

import (
	"context"

	"github.com/alexanderramin/wbs/internal/domain"
)

// DatasetRepo loads and saves the whole dataset. Save replaces everything
// previously stored.
type DatasetRepo interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	Save(ctx context.Context, ds *domain.Dataset) error
}

// WBSNodeRepo and TaskRepo are the per-table halves of SQLiteDatasetRepo.
// Both run against a db.DBTX so Save can compose them in one transaction.
type WBSNodeRepo interface {
	List(ctx context.Context) ([]*domain.WBSNode, error)
	ReplaceAll(ctx context.Context, nodes []*domain.WBSNode) error
}

type TaskRepo interface {
	List(ctx context.Context) ([]*domain.Task, error)
	ReplaceAll(ctx context.Context, tasks []*domain.Task) error
}

var (
	_ DatasetRepo = (*JSONDatasetRepo)(nil)
	_ DatasetRepo = (*SQLiteDatasetRepo)(nil)
	_ WBSNodeRepo = (*SQLiteWBSNodeRepo)(nil)
	_ TaskRepo    = (*SQLiteTaskRepo)(nil)
)
