package domain

import "fmt"

// Deck is a 52-card sequence consumed front to back. A fresh deck is built
// for every hand, shuffled by the caller, and discarded at hand end.
type Deck struct {
	Cards []Card `json:"cards"`
	Next  int    `json:"next"`
}

func NewDeck() Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := uint8(2); rank <= 14; rank++ {
			cards = append(cards, NewCard(Rank(rank), suit))
		}
	}
	return Deck{Cards: cards}
}

// DealOne returns the next undealt card. Dealing past the 52nd card fails
// with ErrDeckExhausted and leaves the cursor untouched.
func (d *Deck) DealOne() (Card, error) {
	if d.Next >= len(d.Cards) {
		return Card{}, fmt.Errorf("%w: at card index %d", ErrDeckExhausted, d.Next)
	}
	card := d.Cards[d.Next]
	d.Next++
	return card, nil
}

func (d *Deck) Remaining() int {
	if d.Next >= len(d.Cards) {
		return 0
	}
	return len(d.Cards) - d.Next
}
