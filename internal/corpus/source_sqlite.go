package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteTable reads a corpus from a table in a SQLite database file. The
// column names become the header row.
type SQLiteTable struct {
	Path  string
	Table string
}

func (s SQLiteTable) FetchAllRows(ctx context.Context) ([][]string, error) {
	if !tableName.MatchString(s.Table) {
		return nil, fmt.Errorf("invalid table name %q", s.Table)
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("PRAGMA query_only: %w", err)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, s.Table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	grid := [][]string{cols}
	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = v.String
		}
		grid = append(grid, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return grid, nil
}

func (s SQLiteTable) String() string {
	return fmt.Sprintf("sqlite:%s#%s", s.Path, s.Table)
}
