package study

import "github.com/rs/zerolog/log"

// bestEffortPersist dispatches a write without blocking the session. The
// session's local state is the source of truth: a failed write is logged
// and the learner keeps studying, nothing is rolled back. Synchronous mode
// exists for tests.
func (s *Session) bestEffortPersist(op string, fn func() error) {
	run := func() {
		if err := fn(); err != nil {
			log.Warn().Err(err).Str("op", op).Msg("best-effort persist failed")
		}
	}
	if s.syncPersist {
		run()
		return
	}
	go run()
}
