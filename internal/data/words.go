package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadWords seeds the word list from r, one word per line. Blank lines and
// lines already present are skipped, so re-running against the same source
// is a no-op. Returns the number of words inserted.
func (db *DB) LoadWords(r io.Reader) (int, error) {
	inserted := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}

		rows, err := db.Query("SELECT id FROM words WHERE word = ?", word)
		if err != nil {
			return inserted, err
		}
		if rows.Len() > 0 {
			continue
		}

		if _, err := db.Exec("INSERT INTO words (word) VALUES (?)", word); err != nil {
			return inserted, err
		}
		inserted++
	}
	if err := scanner.Err(); err != nil {
		return inserted, fmt.Errorf("reading word list: %w", err)
	}
	return inserted, nil
}

// LoadWordsFromFile seeds the word list from the file at path.
func (db *DB) LoadWordsFromFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	return db.LoadWords(f)
}
