// Package jobs runs background maintenance for the study stores.
package jobs

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mstudy/recall-api/models"
)

// staleProgressAge is how long an untouched resume position survives before
// it is pruned. Decks abandoned for this long restart from the first card.
const staleProgressAge = 30 * 24 * time.Hour

// StartPruner schedules a daily sweep of stale study-progress rows and
// starts it in the background.
func StartPruner(db *gorm.DB) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.Every(24).Hours().Do(func() {
		cutoff := time.Now().Add(-staleProgressAge)
		result := db.Unscoped().Where("updated_at < ?", cutoff).Delete(&models.StudyProgress{})
		if result.Error != nil {
			log.Error().Err(result.Error).Msg("failed to prune stale study progress")
			return
		}
		if result.RowsAffected > 0 {
			log.Info().Int64("rows", result.RowsAffected).Msg("pruned stale study progress")
		}
	})
	s.StartAsync()
	return s
}
