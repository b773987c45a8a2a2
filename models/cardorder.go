package models

import "gorm.io/gorm"

// CardOrder stores a user's customized display order for a set's cards,
// independent of the canonical card list. CardIDs is a JSON array of
// flashcard public ids; ids for deleted cards are tolerated and dropped
// when the order is resolved.
type CardOrder struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index:idx_card_order_user_set,unique"`
	SetID   uint   `gorm:"not null;index:idx_card_order_user_set,unique"`
	CardIDs string `gorm:"not null;size:10000"`
}
