package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardList(ids ...string) []Card {
	cards := make([]Card, len(ids))
	for i, id := range ids {
		cards[i] = Card{ID: id, Front: "front " + id, Back: "back " + id}
	}
	return cards
}

func idsOf(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestResolveOrderNoSavedOrder(t *testing.T) {
	cards := cardList("a", "b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(ResolveOrder(cards, nil)))
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(ResolveOrder(cards, []string{})))
}

func TestResolveOrderSavedSubset(t *testing.T) {
	// Saved order [c, a]; b was never ordered and follows.
	cards := cardList("a", "b", "c")
	got := ResolveOrder(cards, []string{"c", "a"})
	assert.Equal(t, []string{"c", "a", "b"}, idsOf(got))
}

func TestResolveOrderDropsDeletedCards(t *testing.T) {
	cards := cardList("a", "b")
	got := ResolveOrder(cards, []string{"gone", "b", "also-gone", "a"})
	assert.Equal(t, []string{"b", "a"}, idsOf(got))
}

func TestResolveOrderIgnoresDuplicateIDs(t *testing.T) {
	cards := cardList("a", "b")
	got := ResolveOrder(cards, []string{"b", "b", "a", "b"})
	assert.Equal(t, []string{"b", "a"}, idsOf(got))
}

func TestResolveOrderIsAlwaysAPermutation(t *testing.T) {
	cards := cardList("a", "b", "c", "d", "e")
	orders := [][]string{
		nil,
		{"e", "a"},
		{"x", "y", "z"},
		{"c", "b", "a", "e", "d"},
		{"d", "x", "d", "b"},
	}
	for _, saved := range orders {
		got := ResolveOrder(cards, saved)
		require.Len(t, got, len(cards))
		seen := make(map[string]bool)
		for _, c := range got {
			assert.False(t, seen[c.ID], "duplicate id %s for saved order %v", c.ID, saved)
			seen[c.ID] = true
		}
		for _, c := range cards {
			assert.True(t, seen[c.ID], "missing id %s for saved order %v", c.ID, saved)
		}
	}
}

func TestResolveOrderDoesNotMutateInput(t *testing.T) {
	cards := cardList("a", "b", "c")
	_ = ResolveOrder(cards, []string{"c", "a"})
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(cards))
}
