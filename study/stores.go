package study

import (
	"context"
	"time"
)

// CardWriter persists a card's review metadata. Called best-effort from an
// active session; failures are logged and never surfaced to the learner.
type CardWriter interface {
	UpdateCard(ctx context.Context, cardID string, reviewCount int, perf Performance) error
}

// ProfileStats accumulates study totals onto a user profile.
type ProfileStats interface {
	AddStudyStats(ctx context.Context, userID uint, sessions, cardsStudied int, at time.Time) error
}

// SetStatsSnapshot is the fresh per-set aggregate returned after a study
// session is recorded, used to refresh any cached view of the set.
type SetStatsSnapshot struct {
	StudySessions int        `json:"studySessions"`
	LastStudied   *time.Time `json:"lastStudied,omitempty"`
}

// SetStats records that a study session happened for a set.
type SetStats interface {
	RecordStudySession(ctx context.Context, setID uint, at time.Time) (SetStatsSnapshot, error)
}

// OrderStore keeps a user's customized card order per set.
type OrderStore interface {
	GetOrder(userID, setID uint) ([]string, error)
	SaveOrder(userID, setID uint, cardIDs []string) error
}

// ProgressStore keeps the resumable position per user and set. GetProgress
// reports ok=false when no record exists.
type ProgressStore interface {
	GetProgress(userID, setID uint) (index, totalCards int, ok bool, err error)
	SaveProgress(userID, setID uint, index, totalCards int) error
	ClearProgress(userID, setID uint) error
}

// Stores bundles the session's collaborators. All are required.
type Stores struct {
	Cards    CardWriter
	Profile  ProfileStats
	Sets     SetStats
	Orders   OrderStore
	Progress ProgressStore
}
