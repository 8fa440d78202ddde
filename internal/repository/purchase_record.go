package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-upgrade-service/internal/model"
	"course-upgrade-service/internal/upgrade"
)

// fixed slot key: the record represents the most recent unfulfilled
// attempt, not a history
const inProgressKey = "in_progress_iap"

type purchaseRecordRepoImpl struct {
	db *gorm.DB
}

// NewPurchaseRecordRepository returns the gorm-backed implementation of the
// in-progress purchase slot.
func NewPurchaseRecordRepository(db *gorm.DB) upgrade.RecordStore {
	return &purchaseRecordRepoImpl{
		db: db,
	}
}

func (r *purchaseRecordRepoImpl) Save(ctx context.Context, rec upgrade.Record) error {
	row := &model.InProgressPurchase{
		Key:      inProgressKey,
		CourseID: rec.CourseID,
		SKU:      rec.SKU,
		Pacing:   string(rec.Pacing),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"course_id":  rec.CourseID,
			"sku":        rec.SKU,
			"pacing":     string(rec.Pacing),
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
}

func (r *purchaseRecordRepoImpl) Load(ctx context.Context) (*upgrade.Record, error) {
	var row model.InProgressPurchase
	err := r.db.WithContext(ctx).
		Where("key = ?", inProgressKey).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// missing columns from older app versions resolve to empty strings
	return &upgrade.Record{
		CourseID: row.CourseID,
		SKU:      row.SKU,
		Pacing:   upgrade.Pacing(row.Pacing),
	}, nil
}

func (r *purchaseRecordRepoImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("key = ?", inProgressKey).
		Delete(&model.InProgressPurchase{}).Error
}
