// Package data owns everything that touches persistent storage: the process
// wide MySQL connection, the parameterized query executor, and the small set
// of operations the protocol handlers are allowed to perform.
package data

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/drawguess/server/internal/core"
)

// DB is the single long-lived handle to the storage engine. It is owned by
// the process for its entire run and is only ever used from the dispatch
// goroutine, so no locking is layered on top of it.
type DB struct {
	conn *sql.DB
	log  *logrus.Logger
}

// Connect opens the MySQL connection described by cfg and verifies it with a
// ping. The utf8mb4 character set is negotiated after connecting; a failure
// there is logged as a warning since the connection itself still works.
func Connect(cfg *core.Config, logger *logrus.Logger) (*DB, error) {
	conn, err := sql.Open("mysql", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	// The dispatch loop is the only user of this handle.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database %s: %w", cfg.Database.Name, err)
	}

	if _, err := conn.Exec("SET NAMES utf8mb4"); err != nil {
		logger.Warnf("could not set connection charset to utf8mb4: %v", err)
	}

	logger.Infof("connected to database %s at %s:%d", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)

	return &DB{conn: conn, log: logger}, nil
}

// Unconnected returns a DB with no underlying connection. Every operation on
// it fails with ErrNoConnection, which lets the server come up and degrade
// gracefully when the database is unreachable at startup.
func Unconnected(logger *logrus.Logger) *DB {
	return &DB{log: logger}
}

// Connected reports whether an underlying connection exists.
func (db *DB) Connected() bool {
	return db.conn != nil
}

// Close releases the underlying connection. Safe to call on an unconnected DB.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	if err != nil {
		return fmt.Errorf("closing database connection: %w", err)
	}
	db.log.Info("closed database connection")
	return nil
}
