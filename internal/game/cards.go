package game

import (
	"math/rand"
	"strconv"
)

// Suits used on the wire. Joker cards always carry SuitJoker.
const (
	SuitSpade   = "SPADE"
	SuitHeart   = "HEART"
	SuitClub    = "CLUB"
	SuitDiamond = "DIAMOND"
	SuitJoker   = "JOKER"
)

// Card values: 1..13 are ace..king, 14 and 15 are the two jokers.
const (
	ValueSmallJoker = 14
	ValueBigJoker   = 15
)

// DeckSize is always 13 ranks x 4 suits plus two jokers.
const DeckSize = 54

// Card is a single playing card. Two cards are the same card when both
// value and suit match.
type Card struct {
	Value int    `json:"value"`
	Suit  string `json:"suit"`
}

// IsJoker reports whether the card is one of the two wild jokers.
func (c Card) IsJoker() bool {
	return c.Value >= ValueSmallJoker
}

// NewDeck returns the ordered 54-card deck.
func NewDeck() []Card {
	suits := []string{SuitSpade, SuitHeart, SuitClub, SuitDiamond}
	deck := make([]Card, 0, DeckSize)
	for _, s := range suits {
		for v := 1; v <= 13; v++ {
			deck = append(deck, Card{Value: v, Suit: s})
		}
	}
	deck = append(deck, Card{Value: ValueSmallJoker, Suit: SuitJoker})
	deck = append(deck, Card{Value: ValueBigJoker, Suit: SuitJoker})
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ParseRank converts a claim label to its numeric value: A=1, J=11, Q=12,
// K=13, numeric strings parse as-is. Anything unparseable resolves to 0.
func ParseRank(label string) int {
	switch label {
	case "A":
		return 1
	case "J":
		return 11
	case "Q":
		return 12
	case "K":
		return 13
	}
	v, err := strconv.Atoi(label)
	if err != nil {
		return 0
	}
	return v
}

// HandContains reports whether the hand covers every card in want,
// counting duplicates.
func HandContains(hand, want []Card) bool {
	counts := make(map[Card]int, len(hand))
	for _, c := range hand {
		counts[c]++
	}
	for _, c := range want {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

// RemoveCards removes the specified cards from a hand and returns the
// updated hand. Each card in toRemove takes out at most one matching card.
func RemoveCards(hand, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, c := range toRemove {
		removeCounts[c]++
	}

	updated := make([]Card, 0, len(hand))
	for _, c := range hand {
		if n, ok := removeCounts[c]; ok && n > 0 {
			removeCounts[c] = n - 1
			continue
		}
		updated = append(updated, c)
	}
	return updated
}
