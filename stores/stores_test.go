package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mstudy/recall-api/models"
	"github.com/mstudy/recall-api/study"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FlashcardSet{},
		&models.Flashcard{},
		&models.CardOrder{},
		&models.StudyProgress{},
	))
	return db
}

func TestCardStoreUpdateCard(t *testing.T) {
	db := testDB(t)
	card := models.Flashcard{Front: "f", Back: "b", PublicID: "card-1", SetID: 1}
	require.NoError(t, db.Create(&card).Error)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 3)
	store := &CardStore{DB: db}
	err := store.UpdateCard(context.Background(), "card-1", 4, study.Performance{
		LastReviewed: &now,
		NextReview:   &next,
		Repetitions:  4,
		EaseFactor:   2.5,
		IntervalDays: 3,
	})
	require.NoError(t, err)

	var got models.Flashcard
	require.NoError(t, db.Where("public_id = ?", "card-1").First(&got).Error)
	assert.Equal(t, 4, got.ReviewCount)
	assert.Equal(t, 4, got.Performance.Repetitions)
	assert.Equal(t, 2.5, got.Performance.EaseFactor)
	assert.Equal(t, 3, got.Performance.IntervalDays)
	require.NotNil(t, got.Performance.NextReview)
	assert.WithinDuration(t, next, *got.Performance.NextReview, time.Second)
}

func TestProfileStatsAccumulate(t *testing.T) {
	db := testDB(t)
	user := models.User{Nickname: "ana", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	store := &ProfileStatsStore{DB: db}
	now := time.Now().UTC()
	require.NoError(t, store.AddStudyStats(context.Background(), user.ID, 1, 5, now))
	require.NoError(t, store.AddStudyStats(context.Background(), user.ID, 1, 2, now))

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, 2, got.TotalStudySessions)
	assert.Equal(t, 7, got.TotalCardsStudied)
	require.NotNil(t, got.LastStudiedAt)
}

func TestSetStatsRecordStudySession(t *testing.T) {
	db := testDB(t)
	set := models.FlashcardSet{Title: "t", UserID: 1, PublicID: "set-1", Difficulty: 2}
	require.NoError(t, db.Create(&set).Error)

	store := &SetStatsStore{DB: db}
	now := time.Now().UTC()
	snap, err := store.RecordStudySession(context.Background(), set.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.StudySessions)
	require.NotNil(t, snap.LastStudied)

	snap, err = store.RecordStudySession(context.Background(), set.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.StudySessions)
}

func TestOrderStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	store := &OrderStore{DB: db}

	got, err := store.GetOrder(1, 7)
	require.NoError(t, err)
	assert.Nil(t, got, "no record yet")

	require.NoError(t, store.SaveOrder(1, 7, []string{"c", "a", "b"}))
	got, err = store.GetOrder(1, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, got)

	// Overwrite, and make sure another set's order is untouched.
	require.NoError(t, store.SaveOrder(1, 8, []string{"x"}))
	require.NoError(t, store.SaveOrder(1, 7, []string{"b", "c", "a"}))
	got, err = store.GetOrder(1, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, got)
	got, err = store.GetOrder(1, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}

func TestProgressStoreLifecycle(t *testing.T) {
	db := testDB(t)
	store := &ProgressStore{DB: db}

	_, _, ok, err := store.GetProgress(1, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveProgress(1, 7, 2, 10))
	require.NoError(t, store.SaveProgress(1, 7, 3, 10))
	idx, total, ok, err := store.GetProgress(1, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 10, total)

	require.NoError(t, store.ClearProgress(1, 7))
	_, _, ok, err = store.GetProgress(1, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an absent record is fine.
	require.NoError(t, store.ClearProgress(1, 7))
}
