package study

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// faceLabelDelay is how long the displayed Front/Back label lags behind a
// flip, masking the card-turn animation. Display-only.
const faceLabelDelay = 400 * time.Millisecond

// Config carries everything a session needs. Cards is the canonical card
// list for the set; the saved order and resume position are read from
// Stores when the session starts.
type Config struct {
	UserID     uint
	SetID      uint
	Difficulty int
	Cards      []Card
	Stores     Stores

	// Clock overrides the wall clock in tests.
	Clock interface{ Now() time.Time }
	// SyncPersist makes best-effort writes synchronous in tests.
	SyncPersist bool
}

// Session drives one learner's pass through a set. All exported methods
// take the session lock, so operations on one session are strictly ordered
// even though handlers run concurrently. Persistence calls never block
// navigation and never roll back local state.
type Session struct {
	mu sync.Mutex

	userID     uint
	setID      uint
	difficulty int

	base        []Card          // display order before filtering
	overrides   map[string]Card // session-local card updates, by id
	index       int
	flipped     bool
	faceLabel   string
	faceTimer   *time.Timer
	starredOnly bool
	reviewed    int // cards advanced past face-up this session

	stores      Stores
	clock       nower
	syncPersist bool
}

// State is a snapshot of the session for rendering.
type State struct {
	SetID         uint   `json:"setId"`
	Index         int    `json:"index"`
	Count         int    `json:"count"`
	Card          *Card  `json:"card,omitempty"`
	Flipped       bool   `json:"flipped"`
	FaceLabel     string `json:"faceLabel"`
	StarredOnly   bool   `json:"starredOnly"`
	CardsReviewed int    `json:"cardsReviewed"`
}

// Summary is the result of finishing a session.
type Summary struct {
	CardsReviewed int               `json:"cardsReviewed"`
	SetStats      *SetStatsSnapshot `json:"setStats,omitempty"`
}

// NewSession resolves the display order and resume position and returns an
// active session. A saved index is honored only while it is still within
// bounds of the current display list; otherwise the session starts at 0.
func NewSession(cfg Config) *Session {
	difficulty := cfg.Difficulty
	if difficulty < 1 {
		difficulty = 1
	} else if difficulty > 5 {
		difficulty = 5
	}

	s := &Session{
		userID:      cfg.UserID,
		setID:       cfg.SetID,
		difficulty:  difficulty,
		overrides:   make(map[string]Card),
		faceLabel:   "Front",
		stores:      cfg.Stores,
		clock:       realNower{},
		syncPersist: cfg.SyncPersist,
	}
	if cfg.Clock != nil {
		s.clock = cfg.Clock
	}

	savedOrder, err := cfg.Stores.Orders.GetOrder(cfg.UserID, cfg.SetID)
	if err != nil {
		log.Warn().Err(err).Uint("setID", cfg.SetID).Msg("card order unavailable, using canonical order")
		savedOrder = nil
	}
	s.base = ResolveOrder(cfg.Cards, savedOrder)

	if idx, _, ok, err := cfg.Stores.Progress.GetProgress(cfg.UserID, cfg.SetID); err != nil {
		log.Warn().Err(err).Uint("setID", cfg.SetID).Msg("study progress unavailable, starting at 0")
	} else if ok && idx >= 0 && idx < len(s.base) {
		s.index = idx
	}

	s.saveProgressLocked()
	return s
}

// displayLocked is the current display list: the base order, filtered to
// starred cards when the filter is on, with session-local updates applied.
func (s *Session) displayLocked() []Card {
	out := make([]Card, 0, len(s.base))
	for _, c := range s.base {
		if over, ok := s.overrides[c.ID]; ok {
			c = over
		}
		if s.starredOnly && !c.Starred {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *Session) saveProgressLocked() {
	count := len(s.displayLocked())
	if count == 0 {
		return
	}
	if err := s.stores.Progress.SaveProgress(s.userID, s.setID, s.index, count); err != nil {
		log.Warn().Err(err).Uint("setID", s.setID).Msg("failed to save study progress")
	}
}

// creditCurrentLocked applies the review scheduler to the current card if
// it is face-up. Viewing the front alone never counts as a review.
func (s *Session) creditCurrentLocked() {
	if !s.flipped {
		return
	}
	disp := s.displayLocked()
	if s.index < 0 || s.index >= len(disp) {
		return
	}
	updated := Review(disp[s.index], s.difficulty, s.clock.Now())
	s.overrides[updated.ID] = updated
	s.reviewed++

	id, count, perf := updated.ID, updated.ReviewCount, *updated.Performance
	s.bestEffortPersist("update card", func() error {
		return s.stores.Cards.UpdateCard(context.Background(), id, count, perf)
	})
}

func (s *Session) setFlippedLocked(flipped bool) {
	s.flipped = flipped
	if s.faceTimer != nil {
		s.faceTimer.Stop()
	}
	s.faceTimer = time.AfterFunc(faceLabelDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.flipped {
			s.faceLabel = "Back"
		} else {
			s.faceLabel = "Front"
		}
	})
}

// Flip turns the current card over. The face label follows after a short
// delay.
func (s *Session) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setFlippedLocked(!s.flipped)
}

// Next credits the current card if it is face-up, then advances. The index
// clamps at the last card; there is no wraparound.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	disp := s.displayLocked()
	if len(disp) == 0 {
		return
	}
	s.creditCurrentLocked()
	if s.index < len(disp)-1 {
		s.index++
	}
	s.setFlippedLocked(false)
	s.saveProgressLocked()
}

// Previous steps back one card, clamped at 0.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.displayLocked()) == 0 {
		return
	}
	if s.index > 0 {
		s.index--
	}
	s.setFlippedLocked(false)
	s.saveProgressLocked()
}

// JumpToCard moves straight to index i; out-of-range jumps are ignored.
func (s *Session) JumpToCard(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	disp := s.displayLocked()
	if i < 0 || i >= len(disp) {
		return
	}
	s.index = i
	s.setFlippedLocked(false)
	s.saveProgressLocked()
}

// Shuffle randomly permutes the display list, persists the result as the
// set's card order, and restarts from the first card. Cards hidden by the
// starred filter keep their relative order after the shuffled ones.
func (s *Session) Shuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	disp := s.displayLocked()
	if len(disp) == 0 {
		return
	}
	rand.Shuffle(len(disp), func(i, j int) {
		disp[i], disp[j] = disp[j], disp[i]
	})

	ids := make([]string, len(disp))
	for i, c := range disp {
		ids[i] = c.ID
	}
	s.base = ResolveOrder(s.base, ids)

	order := make([]string, len(s.base))
	for i, c := range s.base {
		order[i] = c.ID
	}
	if err := s.stores.Orders.SaveOrder(s.userID, s.setID, order); err != nil {
		log.Warn().Err(err).Uint("setID", s.setID).Msg("failed to save card order")
	}

	s.index = 0
	s.setFlippedLocked(false)
	s.saveProgressLocked()
}

// ToggleStarredFilter switches between all cards and starred cards only,
// restarting from the first card. The underlying card set is untouched.
func (s *Session) ToggleStarredFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starredOnly = !s.starredOnly
	s.index = 0
	s.setFlippedLocked(false)
	s.saveProgressLocked()
}

// ResetProgress clears the persisted resume position and starts over.
func (s *Session) ResetProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.stores.Progress.ClearProgress(s.userID, s.setID); err != nil {
		log.Warn().Err(err).Uint("setID", s.setID).Msg("failed to clear study progress")
	}
	s.index = 0
	s.setFlippedLocked(false)
}

// Finish ends the session: the current card is credited if face-up, the
// learner's profile totals and the set's session counter are reconciled,
// and the resume position is cleared. Reconciliation is best-effort; a
// failed write never blocks finishing.
func (s *Session) Finish(ctx context.Context) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creditCurrentLocked()

	now := s.clock.Now()
	if s.reviewed > 0 {
		userID, reviewed := s.userID, s.reviewed
		s.bestEffortPersist("update profile stats", func() error {
			return s.stores.Profile.AddStudyStats(context.Background(), userID, 1, reviewed, now)
		})
	}

	summary := Summary{CardsReviewed: s.reviewed}
	if stats, err := s.stores.Sets.RecordStudySession(ctx, s.setID, now); err != nil {
		log.Warn().Err(err).Uint("setID", s.setID).Msg("failed to record study session")
	} else {
		summary.SetStats = &stats
	}

	if err := s.stores.Progress.ClearProgress(s.userID, s.setID); err != nil {
		log.Warn().Err(err).Uint("setID", s.setID).Msg("failed to clear study progress")
	}
	return summary
}

// Exit abandons the session without stats reconciliation, keeping the
// resume position so the learner can pick up where they left off.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveProgressLocked()
}

// Close stops the face-label timer. Called when the session is evicted.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.faceTimer != nil {
		s.faceTimer.Stop()
	}
}

// State returns a snapshot for rendering.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	disp := s.displayLocked()
	st := State{
		SetID:         s.setID,
		Index:         s.index,
		Count:         len(disp),
		Flipped:       s.flipped,
		FaceLabel:     s.faceLabel,
		StarredOnly:   s.starredOnly,
		CardsReviewed: s.reviewed,
	}
	if s.index >= 0 && s.index < len(disp) {
		card := disp[s.index]
		st.Card = &card
	}
	return st
}
