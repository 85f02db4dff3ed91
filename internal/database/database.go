package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/docthru/docthru/internal/database/models"
	"go.uber.org/zap"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Init(dsn string) (*gorm.DB, error) {
	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		zap.S().Infof("database file not found at '%s', creating directory for it.", dsn)
		// Ensure the directory for the database file exists.
		dbDir := filepath.Dir(dsn)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
	}

	// _txlock=immediate makes every write transaction take the write lock at
	// BEGIN, so concurrent writers queue on busy_timeout instead of failing
	// mid-transaction. SQLite transactions are serializable, which is the
	// isolation level the admission path relies on.
	if !strings.Contains(dsn, "?") {
		dsn += "?_txlock=immediate&_busy_timeout=10000&_journal_mode=WAL"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Application{},
		&models.Challenge{},
		&models.Work{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
