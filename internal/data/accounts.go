package data

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	maxUsernameLen  = 32
	passwordHashLen = 64
)

var (
	ErrInvalidInput       = errors.New("invalid username or password hash")
	ErrInvalidCredentials = errors.New("username/password combination not found")
	ErrUsernameTaken      = errors.New("username is already registered")
)

func validateCredentials(username, passwordHash string) error {
	if username == "" || len(username) > maxUsernameLen {
		return ErrInvalidInput
	}
	if len(passwordHash) != passwordHashLen {
		return ErrInvalidInput
	}
	return nil
}

// lookupAccount returns the id and stored hash for username, or (0, "", nil)
// if no such account exists.
func (db *DB) lookupAccount(username string) (int64, string, error) {
	rows, err := db.Query("SELECT id, password_hash FROM users WHERE username = ?", username)
	if err != nil {
		return 0, "", err
	}
	if rows.Len() == 0 {
		return 0, "", nil
	}

	id, err := strconv.ParseInt(rows.Values[0][0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parsing account id %q: %w", rows.Values[0][0], err)
	}
	return id, rows.Values[0][1], nil
}

// Authenticate verifies the username/hash combination and returns the
// account's positive user id.
func (db *DB) Authenticate(username, passwordHash string) (int64, error) {
	if err := validateCredentials(username, passwordHash); err != nil {
		return 0, err
	}

	id, storedHash, err := db.lookupAccount(username)
	if err != nil {
		return 0, err
	}
	if id == 0 || storedHash != passwordHash {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

// Register creates a new account and returns its assigned user id. The
// timestamp is bound as text like every other parameter.
func (db *DB) Register(username, passwordHash string) (int64, error) {
	if err := validateCredentials(username, passwordHash); err != nil {
		return 0, err
	}

	id, _, err := db.lookupAccount(username)
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return 0, ErrUsernameTaken
	}

	outcome, err := db.Exec(
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username,
		passwordHash,
		time.Now().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, err
	}
	if outcome.LastInsertID <= 0 {
		return 0, fmt.Errorf("registration for %q produced no account id", username)
	}
	return outcome.LastInsertID, nil
}
