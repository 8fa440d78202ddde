package repository

import (
	"context"

	"gorm.io/gorm"

	"course-upgrade-service/internal/model"
)

type AnalyticsEventRepository interface {
	Append(ctx context.Context, name string, properties string) error
	Recent(ctx context.Context, limit int) ([]*model.AnalyticsEvent, error)
}

type analyticsEventRepoImpl struct {
	db *gorm.DB
}

func NewAnalyticsEventRepository(db *gorm.DB) AnalyticsEventRepository {
	return &analyticsEventRepoImpl{
		db: db,
	}
}

func (r *analyticsEventRepoImpl) Append(ctx context.Context, name string, properties string) error {
	return r.db.WithContext(ctx).Create(&model.AnalyticsEvent{
		Name:       name,
		Properties: properties,
	}).Error
}

func (r *analyticsEventRepoImpl) Recent(ctx context.Context, limit int) ([]*model.AnalyticsEvent, error) {
	var events []*model.AnalyticsEvent
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error

	if err != nil {
		return nil, err
	}

	return events, nil
}
