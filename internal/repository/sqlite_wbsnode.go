package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
)

// wbsNodeColumns is the canonical SELECT column list for wbs_nodes.
const wbsNodeColumns = `id, name, parent_id, planned_start, planned_end, actual_start, actual_end`

// SQLiteWBSNodeRepo implements WBSNodeRepo using a SQLite database.
type SQLiteWBSNodeRepo struct {
	db db.DBTX
}

// NewSQLiteWBSNodeRepo creates a new SQLiteWBSNodeRepo.
func NewSQLiteWBSNodeRepo(conn db.DBTX) *SQLiteWBSNodeRepo {
	return &SQLiteWBSNodeRepo{db: conn}
}

// List returns every node in dataset order.
func (r *SQLiteWBSNodeRepo) List(ctx context.Context) ([]*domain.WBSNode, error) {
	query := `SELECT ` + wbsNodeColumns + ` FROM wbs_nodes ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing wbs nodes: %w", err)
	}
	defer rows.Close()

	nodes := []*domain.WBSNode{}
	for rows.Next() {
		n, err := scanWBSNode(rows)
		if err != nil {
			return nil, fmt.Errorf("wbs node row: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs nodes: %w", err)
	}
	return nodes, nil
}

// ReplaceAll deletes every stored node and inserts nodes in order. Run it
// inside a unit of work so readers never see a partial tree.
func (r *SQLiteWBSNodeRepo) ReplaceAll(ctx context.Context, nodes []*domain.WBSNode) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wbs_nodes`); err != nil {
		return fmt.Errorf("clearing wbs nodes: %w", err)
	}
	query := `INSERT INTO wbs_nodes (id, name, parent_id, planned_start, planned_end,
		actual_start, actual_end, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, n := range nodes {
		_, err := r.db.ExecContext(ctx, query,
			n.ID,
			n.Name,
			n.ParentID, // *string: nil becomes SQL NULL
			storedDate(n.PlannedStart),
			storedDate(n.PlannedEnd),
			storedDate(n.ActualStart),
			storedDate(n.ActualEnd),
			i+1,
		)
		if err != nil {
			return fmt.Errorf("inserting wbs node %q: %w", n.Name, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWBSNode(s rowScanner) (*domain.WBSNode, error) {
	var n domain.WBSNode
	var parentID sql.NullString
	var plannedStart, plannedEnd, actualStart, actualEnd sql.NullString

	if err := s.Scan(&n.ID, &n.Name, &parentID,
		&plannedStart, &plannedEnd, &actualStart, &actualEnd); err != nil {
		return nil, err
	}

	n.ParentID = nullableString(parentID)
	for _, col := range []struct {
		name string
		raw  sql.NullString
		dst  **time.Time
	}{
		{"planned_start", plannedStart, &n.PlannedStart},
		{"planned_end", plannedEnd, &n.PlannedEnd},
		{"actual_start", actualStart, &n.ActualStart},
		{"actual_end", actualEnd, &n.ActualEnd},
	} {
		t, err := parseStoredDate(col.name, col.raw)
		if err != nil {
			return nil, fmt.Errorf("wbs node %q: %w", n.ID, err)
		}
		*col.dst = t
	}
	return &n, nil
}
