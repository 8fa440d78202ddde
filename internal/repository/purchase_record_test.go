package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course-upgrade-service/internal/model"
	"course-upgrade-service/internal/upgrade"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.InProgressPurchase{}, &model.AnalyticsEvent{}))
	return db
}

func TestPurchaseRecordRepository_LoadEmpty(t *testing.T) {
	store := NewPurchaseRecordRepository(setupTestDB(t))

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPurchaseRecordRepository_SaveOverwritesSingleSlot(t *testing.T) {
	db := setupTestDB(t)
	store := NewPurchaseRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, upgrade.Record{CourseID: "c1", SKU: "sku1", Pacing: upgrade.PacingSelf}))
	require.NoError(t, store.Save(ctx, upgrade.Record{CourseID: "c2", SKU: "sku2", Pacing: upgrade.PacingInstructor}))

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "c2", rec.CourseID)
	assert.Equal(t, "sku2", rec.SKU)
	assert.Equal(t, upgrade.PacingInstructor, rec.Pacing)

	// the slot is single: only one row ever exists
	var count int64
	require.NoError(t, db.Model(&model.InProgressPurchase{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPurchaseRecordRepository_Clear(t *testing.T) {
	store := NewPurchaseRecordRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, upgrade.Record{CourseID: "c1", SKU: "sku1", Pacing: upgrade.PacingSelf}))
	require.NoError(t, store.Clear(ctx))

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	// clearing an empty slot is fine
	require.NoError(t, store.Clear(ctx))
}

func TestPurchaseRecordRepository_ToleratesMissingFields(t *testing.T) {
	db := setupTestDB(t)
	store := NewPurchaseRecordRepository(db)

	// a row written by an older app version may miss fields entirely
	require.NoError(t, db.Exec(
		`INSERT INTO in_progress_purchases ("key", created_at, updated_at) VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		"in_progress_iap",
	).Error)

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Empty(t, rec.CourseID)
	assert.Empty(t, rec.SKU)
	assert.Empty(t, string(rec.Pacing))
}

func TestAnalyticsEventRepository_AppendAndRecent(t *testing.T) {
	repo := NewAnalyticsEventRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "course_upgrade_error", `{"course_id":"c1"}`))
	require.NoError(t, repo.Append(ctx, "course_upgrade_success", `{"course_id":"c1"}`))

	events, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "course_upgrade_success", events[0].Name, "most recent first")
	assert.Equal(t, "course_upgrade_error", events[1].Name)
}
