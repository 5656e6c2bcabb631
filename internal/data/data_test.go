package data

import (
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Creates a database for testing. For the sake of simplicity, this only uses
// the SQLite engine and creates a new database on every invocation since it
// is relatively cheap to do so (especially given the low number of tests).
func setUpDatabase(t *testing.T) *DB {
	t.Helper()

	testDBFile := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(testDBFile))
	if err != nil {
		t.Fatalf("error initializing test database: %s", err)
	}

	if err = gdb.AutoMigrate(&Account{}, &GameHistory{}, &Word{}); err != nil {
		t.Fatalf("error auto migrating db: %s", err)
	}

	// Release the migrator's handle so the handle under test is the only one.
	if migrateConn, err := gdb.DB(); err == nil {
		_ = migrateConn.Close()
	}

	conn, err := sql.Open("sqlite", testDBFile)
	if err != nil {
		t.Fatalf("error opening test database: %s", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &DB{conn: conn, log: logger}
}
