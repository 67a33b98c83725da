package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
)

// parseStoredDate reads a nullable date column. NULL and empty are nil;
// anything that is not YYYY-MM-DD is an error so a later save cannot
// overwrite it with NULL.
func parseStoredDate(column string, s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := dates.Parse(s.String)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", column, err)
	}
	return t, nil
}

// storedDate converts a date to a value suitable for SQLite storage.
// nil becomes SQL NULL.
func storedDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dates.Layout)
}

// nullableString converts a sql.NullString into an optional string.
func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
