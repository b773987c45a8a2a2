package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStartGetRemove(t *testing.T) {
	f := newFixture()
	m := NewManager()
	cfg := Config{
		UserID: 1, SetID: 7, Difficulty: 1,
		Cards: cardList("a", "b"),
		Stores: Stores{
			Cards: f.cards, Profile: f.profile, Sets: f.sets,
			Orders: f.orders, Progress: f.progress,
		},
		Clock:       fixedClock{testNow},
		SyncPersist: true,
	}

	s := m.Start(cfg)
	got, ok := m.Get(1, 7)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get(1, 8)
	assert.False(t, ok)
	_, ok = m.Get(2, 7)
	assert.False(t, ok)

	// Starting again replaces the existing session.
	s2 := m.Start(cfg)
	got, ok = m.Get(1, 7)
	require.True(t, ok)
	assert.Same(t, s2, got)
	assert.NotSame(t, s, got)

	m.Remove(1, 7)
	_, ok = m.Get(1, 7)
	assert.False(t, ok)

	// Removing twice is harmless.
	m.Remove(1, 7)
}
