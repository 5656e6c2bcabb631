package data

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seedHistory(t *testing.T, db *DB, userID int64, entries []HistoryEntry) {
	t.Helper()
	for _, e := range entries {
		if _, err := db.Exec(
			"INSERT INTO game_history (user_id, score, `rank`, finished_at) VALUES (?, ?, ?, ?)",
			strconv.FormatInt(userID, 10),
			strconv.FormatInt(int64(e.Score), 10),
			strconv.FormatInt(int64(e.Rank), 10),
			e.FinishedAt,
		); err != nil {
			t.Fatalf("error seeding history row: %v", err)
		}
	}
}

func TestGameHistory(t *testing.T) {
	db := setUpDatabase(t)

	seedHistory(t, db, 1, []HistoryEntry{
		{Score: 10, Rank: 1, FinishedAt: "2024-01-01 00:00:00"},
		{Score: 5, Rank: 2, FinishedAt: "2024-01-02 00:00:00"},
		{Score: -3, Rank: 4, FinishedAt: "2024-01-03 00:00:00"},
	})
	seedHistory(t, db, 2, []HistoryEntry{
		{Score: 99, Rank: 1, FinishedAt: "2024-02-01 00:00:00"},
	})

	tests := []struct {
		name   string
		userID int64
		limit  int
		want   []HistoryEntry
	}{
		{
			name:   "most recent first",
			userID: 1,
			limit:  100,
			want: []HistoryEntry{
				{Score: -3, Rank: 4, FinishedAt: "2024-01-03 00:00:00"},
				{Score: 5, Rank: 2, FinishedAt: "2024-01-02 00:00:00"},
				{Score: 10, Rank: 1, FinishedAt: "2024-01-01 00:00:00"},
			},
		},
		{
			name:   "limit caps the result",
			userID: 1,
			limit:  2,
			want: []HistoryEntry{
				{Score: -3, Rank: 4, FinishedAt: "2024-01-03 00:00:00"},
				{Score: 5, Rank: 2, FinishedAt: "2024-01-02 00:00:00"},
			},
		},
		{
			name:   "only the requested user's rows",
			userID: 2,
			limit:  100,
			want:   []HistoryEntry{{Score: 99, Rank: 1, FinishedAt: "2024-02-01 00:00:00"}},
		},
		{
			name:   "no rows",
			userID: 3,
			limit:  100,
			want:   []HistoryEntry{},
		},
		{
			name:   "zero limit",
			userID: 1,
			limit:  0,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.GameHistory(tt.userID, tt.limit)
			if err != nil {
				t.Fatalf("GameHistory() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("history mismatch; diff:\n%s", diff)
			}
		})
	}
}

func TestGameHistoryInvalidUser(t *testing.T) {
	db := setUpDatabase(t)

	if _, err := db.GameHistory(0, 100); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("GameHistory(0) error = %v, want %v", err, ErrInvalidInput)
	}
	if _, err := db.GameHistory(-5, 100); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("GameHistory(-5) error = %v, want %v", err, ErrInvalidInput)
	}
}
