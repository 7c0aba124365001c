// Package sqlite provides GORM-backed repository implementations on a local
// SQLite file. It is the storage driver for single-node deployments that
// need durability without a database server.
package sqlite

import (
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens (creating if needed) the SQLite database at path and applies
// schema migrations. An empty path defaults to ./arbor.db; ":memory:" is
// accepted for tests.
func Open(path string) (*gorm.DB, error) {
	if path == "" {
		path = "./arbor.db"
	}
	db, err := gorm.Open(gormsqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate applies schema migrations for all records.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&StateRecord{}, &SnapshotRecord{})
}
