package study

// ResolveOrder merges a saved custom ordering with the canonical card list.
// Ids in savedOrder that still exist come first, in savedOrder's order;
// cards not mentioned in savedOrder follow in their original relative order.
// Ids in savedOrder that no longer exist are dropped. The result is always
// a permutation of cards.
func ResolveOrder(cards []Card, savedOrder []string) []Card {
	if len(savedOrder) == 0 {
		out := make([]Card, len(cards))
		copy(out, cards)
		return out
	}

	byID := make(map[string]Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	out := make([]Card, 0, len(cards))
	taken := make(map[string]bool, len(savedOrder))
	for _, id := range savedOrder {
		if taken[id] {
			continue
		}
		if c, ok := byID[id]; ok {
			out = append(out, c)
			taken[id] = true
		}
	}
	for _, c := range cards {
		if !taken[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
