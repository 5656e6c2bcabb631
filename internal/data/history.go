package data

import (
	"fmt"
	"strconv"
)

// HistoryEntry is one completed round as returned by the facade. FinishedAt
// is the storage engine's textual timestamp; width enforcement happens at
// the protocol layer.
type HistoryEntry struct {
	Score      int32
	Rank       int32
	FinishedAt string
}

// GameHistory returns up to limit completed rounds for userID, most recent
// first.
func (db *DB) GameHistory(userID int64, limit int) ([]HistoryEntry, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		return nil, nil
	}

	// LIMIT can't be a text bind; it is validated above and formatted in.
	query := fmt.Sprintf(
		"SELECT score, `rank`, finished_at FROM game_history WHERE user_id = ? ORDER BY finished_at DESC LIMIT %d",
		limit,
	)
	rows, err := db.Query(query, strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, rows.Len())
	for _, row := range rows.Values {
		score, err := strconv.ParseInt(row[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing score %q: %w", row[0], err)
		}
		rank, err := strconv.ParseInt(row[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing rank %q: %w", row[1], err)
		}
		entries = append(entries, HistoryEntry{
			Score:      int32(score),
			Rank:       int32(rank),
			FinishedAt: row[2],
		})
	}
	return entries, nil
}
