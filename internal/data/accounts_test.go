package data

import (
	"errors"
	"strings"
	"testing"
)

func testHash(seed string) string {
	return strings.Repeat(seed, 64/len(seed))
}

func TestRegister(t *testing.T) {
	db := setUpDatabase(t)

	id, err := db.Register("demo_user", testHash("a"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if id <= 0 {
		t.Errorf("Register() id = %d, want > 0", id)
	}

	second, err := db.Register("other_user", testHash("b"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if second == id {
		t.Errorf("Register() assigned duplicate id %d", second)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setUpDatabase(t)

	if _, err := db.Register("demo_user", testHash("a")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := db.Register("demo_user", testHash("b")); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register() error = %v, want %v", err, ErrUsernameTaken)
	}
}

func TestAuthenticate(t *testing.T) {
	db := setUpDatabase(t)

	registered, err := db.Register("demo_user", testHash("a"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		hash     string
		wantID   int64
		wantErr  error
	}{
		{name: "valid credentials", username: "demo_user", hash: testHash("a"), wantID: registered},
		{name: "wrong hash", username: "demo_user", hash: testHash("b"), wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "nobody", hash: testHash("a"), wantErr: ErrInvalidCredentials},
		{name: "empty username", username: "", hash: testHash("a"), wantErr: ErrInvalidInput},
		{name: "malformed hash", username: "demo_user", hash: "abc", wantErr: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := db.Authenticate(tt.username, tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if id != tt.wantID {
				t.Errorf("Authenticate() id = %d, want %d", id, tt.wantID)
			}
		})
	}
}
