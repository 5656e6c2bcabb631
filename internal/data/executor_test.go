package data

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestQueryBindsParamsInOrder(t *testing.T) {
	db := setUpDatabase(t)

	words := []string{"zebra", "apple", "mango"}
	for _, w := range words {
		if _, err := db.Exec("INSERT INTO words (word) VALUES (?)", w); err != nil {
			t.Fatalf("Exec() error = %v", err)
		}
	}

	rows, err := db.Query("SELECT word FROM words WHERE word = ? OR word = ? ORDER BY word", "apple", "zebra")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	want := [][]string{{"apple"}, {"zebra"}}
	if diff := cmp.Diff(want, rows.Values); diff != "" {
		t.Errorf("result mismatch; diff:\n%s", diff)
	}
}

func TestQueryWithoutPlaceholders(t *testing.T) {
	db := setUpDatabase(t)

	if _, err := db.Exec("INSERT INTO words (word) VALUES (?)", "apple"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}

	rows, err := db.Query("SELECT word FROM words")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if rows.Len() != 1 || rows.Values[0][0] != "apple" {
		t.Errorf("Query() = %v, want one row containing apple", rows.Values)
	}
}

func TestQueryParamValidation(t *testing.T) {
	db := setUpDatabase(t)

	tests := []struct {
		name    string
		query   string
		params  []any
		wantErr error
	}{
		{
			name:    "too few params",
			query:   "SELECT id FROM words WHERE word = ?",
			params:  nil,
			wantErr: ErrParamMismatch,
		},
		{
			name:    "too many params",
			query:   "SELECT id FROM words WHERE word = ?",
			params:  []any{"a", "b"},
			wantErr: ErrParamMismatch,
		},
		{
			name:    "non-string param",
			query:   "SELECT id FROM words WHERE word = ?",
			params:  []any{42},
			wantErr: ErrInvalidParamType,
		},
		{
			name:    "empty template",
			query:   "",
			params:  nil,
			wantErr: ErrEmptyQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.Query(tt.query, tt.params...); !errors.Is(err, tt.wantErr) {
				t.Errorf("Query() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := db.Exec(tt.query, tt.params...); !errors.Is(err, tt.wantErr) {
				t.Errorf("Exec() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNilParamBindsAsEmptyString(t *testing.T) {
	db := setUpDatabase(t)

	if _, err := db.Exec(
		"INSERT INTO game_history (user_id, score, `rank`, finished_at) VALUES (?, ?, ?, ?)",
		"1", "10", "1", nil,
	); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}

	rows, err := db.Query("SELECT finished_at FROM game_history WHERE user_id = ? AND finished_at = ?", "1", "")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if rows.Len() != 1 {
		t.Errorf("nil parameter did not bind as empty string; got %d rows", rows.Len())
	}
}

func TestNullColumnReadsAsEmptyString(t *testing.T) {
	db := setUpDatabase(t)

	if _, err := db.Exec(
		"INSERT INTO game_history (user_id, score, `rank`) VALUES (?, ?, ?)",
		"1", "10", "1",
	); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}

	rows, err := db.Query("SELECT finished_at FROM game_history WHERE user_id = ?", "1")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if rows.Len() != 1 || rows.Values[0][0] != "" {
		t.Errorf("Query() = %v, want one row with empty finished_at", rows.Values)
	}
}

func TestQueryPrepareFailure(t *testing.T) {
	db := setUpDatabase(t)

	if _, err := db.Query("SELECT FROM no_such_table WHERE x = ?", "a"); err == nil {
		t.Error("Query() succeeded for invalid SQL")
	}

	// The connection must remain usable after a failed prepare.
	if _, err := db.Query("SELECT word FROM words WHERE word = ?", "a"); err != nil {
		t.Errorf("Query() after failed prepare error = %v", err)
	}
}

func TestExecOutcome(t *testing.T) {
	db := setUpDatabase(t)

	outcome, err := db.Exec("INSERT INTO words (word) VALUES (?)", "apple")
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if outcome.LastInsertID <= 0 {
		t.Errorf("LastInsertID = %d, want > 0", outcome.LastInsertID)
	}
	if outcome.RowsAffected != 1 {
		t.Errorf("RowsAffected = %d, want 1", outcome.RowsAffected)
	}
}

func TestUnconnectedDB(t *testing.T) {
	db := Unconnected(discardLogger())

	if db.Connected() {
		t.Error("Connected() = true for unconnected DB")
	}
	if _, err := db.Query("SELECT 1"); !errors.Is(err, ErrNoConnection) {
		t.Errorf("Query() error = %v, want %v", err, ErrNoConnection)
	}
	if _, err := db.Exec("DELETE FROM words"); !errors.Is(err, ErrNoConnection) {
		t.Errorf("Exec() error = %v, want %v", err, ErrNoConnection)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
