package data

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Migrate brings the schema up to date over the existing connection. By
// default only errors are logged but debug enables full SQL query
// prints-to-console.
func Migrate(db *DB, debug bool) error {
	if db.conn == nil {
		return ErrNoConnection
	}

	log := logger.Default.LogMode(logger.Error)
	if debug {
		log = logger.Default.LogMode(logger.Info)
	}

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db.conn}), &gorm.Config{Logger: log})
	if err != nil {
		return fmt.Errorf("error initializing migrator: %w", err)
	}

	if err := gdb.AutoMigrate(&Account{}, &GameHistory{}, &Word{}); err != nil {
		return fmt.Errorf("error auto migrating db: %w", err)
	}
	return nil
}
