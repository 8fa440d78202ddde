package client

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course-upgrade-service/internal/model"
)

// InitSQLiteClient opens the companion store and migrates its tables. The
// store only holds the single in-progress purchase slot and the analytics
// audit trail, so a local sqlite file is enough.
func InitSQLiteClient(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.InProgressPurchase{},
		&model.AnalyticsEvent{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
