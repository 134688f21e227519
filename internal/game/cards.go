package game

import "flipdeck/internal/store"

// Card is one rendered sentence card.
type Card struct {
	// Index is the originating sentence index.
	Index int

	// Text is the sentence, or "" while the card is face-down.
	Text string

	Revealed bool

	// Removable is set on revealed cards, which carry a remove control.
	Removable bool
}

// FaceDown reports whether the card hides its text.
func (c Card) FaceDown() bool { return c.Text == "" && !c.Revealed }

// Render rebuilds the card list. Cards follow order when it is non-nil,
// otherwise natural sentence order. A card shows its text when showAll is
// set or its index is revealed.
func Render(sentences []string, revealed store.IndexSet, order []int, showAll bool) []Card {
	indices := order
	if indices == nil {
		indices = make([]int, len(sentences))
		for i := range indices {
			indices[i] = i
		}
	}

	cards := make([]Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(sentences) {
			continue
		}
		isRevealed := revealed.Has(idx)
		c := Card{Index: idx, Revealed: isRevealed, Removable: isRevealed}
		if showAll || isRevealed {
			c.Text = sentences[idx]
		}
		cards = append(cards, c)
	}
	return cards
}
