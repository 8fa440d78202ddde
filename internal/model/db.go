package model

import "time"

// InProgressPurchase is the single-slot record of the most recent
// unfulfilled purchase attempt. It survives restarts and is keyed by a
// fixed slot key, not per course.
type InProgressPurchase struct {
	Key      string `gorm:"primaryKey;size:64;not null"`
	CourseID string `gorm:"size:64"`
	SKU      string `gorm:"size:64"`
	Pacing   string `gorm:"size:16"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnalyticsEvent is an append-only audit row for every emitted analytics
// event. Properties holds the event payload as JSON.
type AnalyticsEvent struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:64;index;not null"`
	Properties string `gorm:"type:text"`

	CreatedAt time.Time
}
