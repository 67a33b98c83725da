package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/wbs/internal/document"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/natefinch/atomic"
)

// JSONDatasetRepo stores the dataset as a single {wbs, tasks} document.
// Writes go through a temp file and rename, so a crash mid-save leaves the
// previous file intact.
type JSONDatasetRepo struct {
	path     string
	statuses domain.StatusSet
}

func NewJSONDatasetRepo(path string, statuses domain.StatusSet) *JSONDatasetRepo {
	return &JSONDatasetRepo{path: path, statuses: statuses}
}

func (r *JSONDatasetRepo) Path() string { return r.path }

// Load reads the document, rejecting malformed content before any record
// reaches the domain. A missing file is an empty dataset.
func (r *JSONDatasetRepo) Load(ctx context.Context) (*domain.Dataset, error) {
	doc, err := document.LoadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewDataset(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}
	if err := document.FormatErrors(document.ValidateDocument(doc, r.statuses)); err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return document.ToDataset(doc, r.statuses)
}

func (r *JSONDatasetRepo) Save(ctx context.Context, ds *domain.Dataset) error {
	data, err := document.Encode(document.FromDataset(ds))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", r.path, err)
	}
	return nil
}
