package models

import "gorm.io/gorm"

// StudyProgress is the resumable position of a study session, one row per
// user and set. TotalCards is the display count at save time; a saved index
// is only honored on resume while it is still in bounds.
type StudyProgress struct {
	gorm.Model
	UserID     uint `gorm:"not null;index:idx_study_progress_user_set,unique"`
	SetID      uint `gorm:"not null;index:idx_study_progress_user_set,unique"`
	CardIndex  int  `gorm:"not null"`
	TotalCards int  `gorm:"not null"`
}
