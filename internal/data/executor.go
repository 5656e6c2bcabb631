package data

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoConnection indicates the operation ran against an unconnected DB.
	ErrNoConnection = errors.New("no database connection")
	// ErrEmptyQuery indicates an empty query template.
	ErrEmptyQuery = errors.New("empty query template")
	// ErrParamMismatch indicates the number of supplied parameters does not
	// equal the number of ? placeholders in the template.
	ErrParamMismatch = errors.New("parameter count does not match placeholder count")
	// ErrInvalidParamType indicates a parameter that is neither a string nor
	// nil. The executor binds text only; callers format other values first.
	ErrInvalidParamType = errors.New("query parameters must be strings")
)

// Rows is a result set fully materialized into memory. Materializing before
// returning lets the statement that produced it be released immediately, and
// NULL column values are normalized to empty strings on the way in.
type Rows struct {
	Columns []string
	Values  [][]string
}

// Len returns the number of rows in the set.
func (r *Rows) Len() int {
	return len(r.Values)
}

// Outcome reports the result of a write query.
type Outcome struct {
	LastInsertID int64
	RowsAffected int64
}

// bind validates params against the template and produces driver arguments.
// nil parameters are normalized to empty strings rather than NULL binds.
func bind(query string, params []any) ([]any, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	placeholders := strings.Count(query, "?")
	if len(params) != placeholders {
		return nil, fmt.Errorf("%w: template has %d, got %d", ErrParamMismatch, placeholders, len(params))
	}

	args := make([]any, len(params))
	for i, p := range params {
		switch v := p.(type) {
		case nil:
			args[i] = ""
		case string:
			args[i] = v
		default:
			return nil, fmt.Errorf("%w: parameter %d is %T", ErrInvalidParamType, i, p)
		}
	}
	return args, nil
}

// Query executes a read template and returns the materialized result set.
// Templates without placeholders are executed directly; all others go
// through an explicitly prepared statement with text-typed binds.
func (db *DB) Query(query string, params ...any) (*Rows, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}

	args, err := bind(query, params)
	if err != nil {
		return nil, err
	}

	var rows *sql.Rows
	if len(args) == 0 {
		rows, err = db.conn.Query(query)
	} else {
		var stmt *sql.Stmt
		stmt, err = db.conn.Prepare(query)
		if err != nil {
			return nil, fmt.Errorf("preparing query: %w", err)
		}
		defer stmt.Close()
		rows, err = stmt.Query(args...)
	}
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	return materialize(rows)
}

// Exec executes a write template and returns its outcome.
func (db *DB) Exec(query string, params ...any) (*Outcome, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}

	args, err := bind(query, params)
	if err != nil {
		return nil, err
	}

	var result sql.Result
	if len(args) == 0 {
		result, err = db.conn.Exec(query)
	} else {
		var stmt *sql.Stmt
		stmt, err = db.conn.Prepare(query)
		if err != nil {
			return nil, fmt.Errorf("preparing statement: %w", err)
		}
		defer stmt.Close()
		result, err = stmt.Exec(args...)
	}
	if err != nil {
		return nil, fmt.Errorf("executing statement: %w", err)
	}

	outcome := &Outcome{}
	// Not every engine reports these; a write that succeeded still counts.
	if id, err := result.LastInsertId(); err == nil {
		outcome.LastInsertID = id
	}
	if n, err := result.RowsAffected(); err == nil {
		outcome.RowsAffected = n
	}
	return outcome, nil
}

// materialize drains rows into memory, scanning every column as nullable
// text.
func materialize(rows *sql.Rows) (*Rows, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	out := &Rows{Columns: columns}
	for rows.Next() {
		fields := make([]sql.NullString, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range fields {
			scanArgs[i] = &fields[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}

		values := make([]string, len(columns))
		for i, f := range fields {
			if f.Valid {
				values[i] = f.String
			}
		}
		out.Values = append(out.Values, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading result rows: %w", err)
	}
	return out, nil
}
