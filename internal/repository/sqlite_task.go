package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
)

const taskColumns = `id, title, status, wbs_id, priority, due, description`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY position`
	return r.query(ctx, query)
}

func (r *SQLiteTaskRepo) ReplaceAll(ctx context.Context, tasks []*domain.Task) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	query := `INSERT INTO tasks (id, title, status, wbs_id, priority, due, description, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, t := range tasks {
		_, err := r.db.ExecContext(ctx, query,
			t.ID,
			t.Title,
			string(t.Status),
			t.WBSID,
			string(t.Priority),
			storedDate(t.Due),
			t.Description,
			i+1,
		)
		if err != nil {
			return fmt.Errorf("inserting task %q: %w", t.Title, err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status, priority string
	var wbsID, due sql.NullString

	if err := s.Scan(&t.ID, &t.Title, &status, &wbsID, &priority, &due, &t.Description); err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(status)
	t.Priority = domain.Priority(priority)
	t.WBSID = nullableString(wbsID)
	d, err := parseStoredDate("due", due)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", t.ID, err)
	}
	t.Due = d
	return &t, nil
}
