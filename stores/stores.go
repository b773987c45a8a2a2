// Package stores implements the study package's collaborator interfaces on
// top of the GORM models.
package stores

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mstudy/recall-api/models"
	"github.com/mstudy/recall-api/study"
	"gorm.io/gorm"
)

func New(db *gorm.DB) study.Stores {
	return study.Stores{
		Cards:    &CardStore{DB: db},
		Profile:  &ProfileStatsStore{DB: db},
		Sets:     &SetStatsStore{DB: db},
		Orders:   &OrderStore{DB: db},
		Progress: &ProgressStore{DB: db},
	}
}

type CardStore struct {
	DB *gorm.DB
}

func (s *CardStore) UpdateCard(ctx context.Context, cardID string, reviewCount int, perf study.Performance) error {
	return s.DB.WithContext(ctx).Model(&models.Flashcard{}).
		Where("public_id = ?", cardID).
		Updates(map[string]interface{}{
			"review_count":       reviewCount,
			"perf_last_reviewed": perf.LastReviewed,
			"perf_next_review":   perf.NextReview,
			"perf_repetitions":   perf.Repetitions,
			"perf_ease_factor":   perf.EaseFactor,
			"perf_interval_days": perf.IntervalDays,
		}).Error
}

type ProfileStatsStore struct {
	DB *gorm.DB
}

func (s *ProfileStatsStore) AddStudyStats(ctx context.Context, userID uint, sessions, cardsStudied int, at time.Time) error {
	return s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_study_sessions": gorm.Expr("total_study_sessions + ?", sessions),
			"total_cards_studied":  gorm.Expr("total_cards_studied + ?", cardsStudied),
			"last_studied_at":      at,
		}).Error
}

type SetStatsStore struct {
	DB *gorm.DB
}

func (s *SetStatsStore) RecordStudySession(ctx context.Context, setID uint, at time.Time) (study.SetStatsSnapshot, error) {
	err := s.DB.WithContext(ctx).Model(&models.FlashcardSet{}).
		Where("id = ?", setID).
		Updates(map[string]interface{}{
			"study_sessions": gorm.Expr("study_sessions + 1"),
			"last_studied":   at,
		}).Error
	if err != nil {
		return study.SetStatsSnapshot{}, err
	}

	var set models.FlashcardSet
	if err := s.DB.WithContext(ctx).First(&set, setID).Error; err != nil {
		return study.SetStatsSnapshot{}, err
	}
	return study.SetStatsSnapshot{
		StudySessions: set.StudySessions,
		LastStudied:   set.LastStudied,
	}, nil
}

type OrderStore struct {
	DB *gorm.DB
}

func (s *OrderStore) GetOrder(userID, setID uint) ([]string, error) {
	var record models.CardOrder
	err := s.DB.Where("user_id = ? AND set_id = ?", userID, setID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(record.CardIDs), &ids); err != nil {
		// A corrupt order record is treated as no record at all.
		return nil, nil
	}
	return ids, nil
}

func (s *OrderStore) SaveOrder(userID, setID uint, cardIDs []string) error {
	encoded, err := json.Marshal(cardIDs)
	if err != nil {
		return err
	}

	var record models.CardOrder
	err = s.DB.Where("user_id = ? AND set_id = ?", userID, setID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.CardOrder{UserID: userID, SetID: setID, CardIDs: string(encoded)}
		return s.DB.Create(&record).Error
	}
	if err != nil {
		return err
	}
	record.CardIDs = string(encoded)
	return s.DB.Save(&record).Error
}

type ProgressStore struct {
	DB *gorm.DB
}

func (s *ProgressStore) GetProgress(userID, setID uint) (int, int, bool, error) {
	var record models.StudyProgress
	err := s.DB.Where("user_id = ? AND set_id = ?", userID, setID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	return record.CardIndex, record.TotalCards, true, nil
}

func (s *ProgressStore) SaveProgress(userID, setID uint, index, totalCards int) error {
	var record models.StudyProgress
	err := s.DB.Where("user_id = ? AND set_id = ?", userID, setID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.StudyProgress{UserID: userID, SetID: setID, CardIndex: index, TotalCards: totalCards}
		return s.DB.Create(&record).Error
	}
	if err != nil {
		return err
	}
	record.CardIndex = index
	record.TotalCards = totalCards
	return s.DB.Save(&record).Error
}

func (s *ProgressStore) ClearProgress(userID, setID uint) error {
	return s.DB.Unscoped().
		Where("user_id = ? AND set_id = ?", userID, setID).
		Delete(&models.StudyProgress{}).Error
}
