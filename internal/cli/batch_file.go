package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/mutation"
	"gopkg.in/yaml.v3"
)

// Batch files are YAML (or JSON, which YAML accepts) lists of rows. A row
// names the record by id; only the keys present are changed, an explicit
// null clears a value. Field names follow the persisted document.
//
//	- id: 6f1c...
//	  start_date: 2024-02-01
//	  parent: null
//	- id: 9ab2...
//	  delete: true
//
// Values are kept as yaml.Node so an absent key (zero Kind) can be told
// apart from an explicit null.
type wbsBatchRow struct {
	ID          string    `yaml:"id"`
	Name        yaml.Node `yaml:"name"`
	Parent      yaml.Node `yaml:"parent"`
	Start       yaml.Node `yaml:"start_date"`
	End         yaml.Node `yaml:"end_date"`
	ActualStart yaml.Node `yaml:"actual_start_date"`
	ActualEnd   yaml.Node `yaml:"actual_end_date"`
	Delete      bool      `yaml:"delete"`
}

type taskBatchRow struct {
	ID     string    `yaml:"id"`
	Title  yaml.Node `yaml:"title"`
	WBSID  yaml.Node `yaml:"wbs_id"`
	Due    yaml.Node `yaml:"due"`
	Delete bool      `yaml:"delete"`
}

// openBatchSource opens path, or stdin for "-".
func openBatchSource(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch file: %w", err)
	}
	return f, nil
}

func decodeBatch[T any](r io.Reader) ([]T, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var rows []T
	if err := dec.Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	return rows, nil
}

func present(n yaml.Node) bool {
	return n.Kind != 0
}

// nodeString reads a scalar; null and blank yield nil.
func nodeString(field string, n yaml.Node) (*string, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: %s must be a scalar", n.Line, field)
	}
	if n.ShortTag() == "!!null" || strings.TrimSpace(n.Value) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(n.Value)
	return &v, nil
}

func nodeDate(field string, n yaml.Node) (*time.Time, error) {
	s, err := nodeString(field, n)
	if err != nil || s == nil {
		return nil, err
	}
	t, err := dates.Parse(*s)
	if err != nil {
		return nil, fmt.Errorf("line %d: %s: %w", n.Line, field, err)
	}
	return t, nil
}

// wbsBatch holds the decoded WBS rows plus renames, which the table edit
// protocol does not carry and are applied separately.
type wbsBatch struct {
	Rows    []mutation.WBSRowEdit
	Renames map[string]string
	Unknown []string
}

// buildWBSBatch fills every row from the current record, then overlays the
// keys the file sets.
func buildWBSBatch(ctx context.Context, app *App, raw []wbsBatchRow) (*wbsBatch, error) {
	out := &wbsBatch{Renames: map[string]string{}}
	for i, r := range raw {
		ref := strings.TrimSpace(r.ID)
		if ref == "" {
			return nil, fmt.Errorf("row %d: id is required", i+1)
		}
		id, err := resolveNodeID(ctx, app, ref)
		if err != nil {
			out.Unknown = append(out.Unknown, ref)
			continue
		}
		n, err := app.WBS.Get(ctx, id)
		if err != nil {
			out.Unknown = append(out.Unknown, ref)
			continue
		}

		row := mutation.WBSRowEdit{
			ID:       id,
			Dates:    mutation.DatesOf(n),
			ParentID: n.ParentID,
			Delete:   r.Delete,
		}
		dateFields := []struct {
			name string
			node yaml.Node
			dst  **time.Time
		}{
			{"start_date", r.Start, &row.Dates.PlannedStart},
			{"end_date", r.End, &row.Dates.PlannedEnd},
			{"actual_start_date", r.ActualStart, &row.Dates.ActualStart},
			{"actual_end_date", r.ActualEnd, &row.Dates.ActualEnd},
		}
		for _, f := range dateFields {
			if !present(f.node) {
				continue
			}
			if *f.dst, err = nodeDate(f.name, f.node); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		if present(r.Parent) {
			p, err := nodeString("parent", r.Parent)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if p != nil {
				if pid, err := resolveNodeID(ctx, app, *p); err == nil {
					p = &pid
				}
			}
			row.ParentID = p
		}
		if present(r.Name) && !r.Delete {
			name, err := nodeString("name", r.Name)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if name == nil {
				return nil, fmt.Errorf("row %d: name cannot be blank", i+1)
			}
			out.Renames[id] = *name
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

type taskBatch struct {
	Rows    []mutation.TaskRowEdit
	Unknown []string
}

func buildTaskBatch(ctx context.Context, app *App, raw []taskBatchRow) (*taskBatch, error) {
	out := &taskBatch{}
	for i, r := range raw {
		ref := strings.TrimSpace(r.ID)
		if ref == "" {
			return nil, fmt.Errorf("row %d: id is required", i+1)
		}
		id, err := resolveTaskID(ctx, app, ref)
		if err != nil {
			out.Unknown = append(out.Unknown, ref)
			continue
		}
		t, err := app.Tasks.Get(ctx, id)
		if err != nil {
			out.Unknown = append(out.Unknown, ref)
			continue
		}

		edit := mutation.EditOf(t)
		row := mutation.TaskRowEdit{ID: id, Title: edit.Title, WBSID: edit.WBSID, Due: edit.Due, Delete: r.Delete}

		if present(r.Title) {
			// A blank title is passed on so the batch rejects the row.
			if r.Title.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("row %d: line %d: title must be a scalar", i+1, r.Title.Line)
			}
			row.Title = ""
			if r.Title.ShortTag() != "!!null" {
				row.Title = r.Title.Value
			}
		}
		if present(r.WBSID) {
			w, err := nodeString("wbs_id", r.WBSID)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if w != nil {
				if wid, err := resolveNodeID(ctx, app, *w); err == nil {
					w = &wid
				}
			}
			row.WBSID = w
		}
		if present(r.Due) {
			if row.Due, err = nodeDate("due", r.Due); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
