package game

import (
	"fmt"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[string]bool)
	jokers := 0
	for _, c := range deck {
		key := fmt.Sprintf("%s-%d", c.Suit, c.Value)
		if seen[key] {
			t.Fatalf("duplicate card found: %s", key)
		}
		seen[key] = true
		if c.IsJoker() {
			jokers++
			if c.Suit != SuitJoker {
				t.Fatalf("joker with suit %q", c.Suit)
			}
		}
	}
	if jokers != 2 {
		t.Fatalf("joker count = %d, want 2", jokers)
	}
}

func TestShuffleDeckPreservesCards(t *testing.T) {
	deck := NewDeck()
	shuffled := ShuffleDeck(deck)

	if len(shuffled) != len(deck) {
		t.Fatalf("shuffled size = %d, want %d", len(shuffled), len(deck))
	}

	// The input deck must not be mutated.
	for i, c := range NewDeck() {
		if deck[i] != c {
			t.Fatalf("input deck mutated at %d: %+v", i, deck[i])
		}
	}

	counts := make(map[Card]int)
	for _, c := range deck {
		counts[c]++
	}
	for _, c := range shuffled {
		counts[c]--
	}
	for c, n := range counts {
		if n != 0 {
			t.Fatalf("card %+v count off by %d after shuffle", c, n)
		}
	}
}

func TestParseRank(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"A", 1},
		{"J", 11},
		{"Q", 12},
		{"K", 13},
		{"2", 2},
		{"10", 10},
		{"13", 13},
		{"JOKER", 0},
		{"", 0},
		{"x", 0},
	}
	for _, tt := range tests {
		if got := ParseRank(tt.label); got != tt.want {
			t.Errorf("ParseRank(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestHandContains(t *testing.T) {
	hand := []Card{
		{Value: 5, Suit: SuitSpade},
		{Value: 5, Suit: SuitHeart},
		{Value: 9, Suit: SuitClub},
	}

	tests := []struct {
		name string
		want []Card
		ok   bool
	}{
		{"single present", []Card{{Value: 9, Suit: SuitClub}}, true},
		{"two fives", []Card{{Value: 5, Suit: SuitSpade}, {Value: 5, Suit: SuitHeart}}, true},
		{"same card twice", []Card{{Value: 9, Suit: SuitClub}, {Value: 9, Suit: SuitClub}}, false},
		{"absent card", []Card{{Value: 5, Suit: SuitDiamond}}, false},
		{"empty want", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandContains(hand, tt.want); got != tt.ok {
				t.Fatalf("HandContains() = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestRemoveCards(t *testing.T) {
	hand := []Card{
		{Value: 5, Suit: SuitSpade},
		{Value: 5, Suit: SuitSpade},
		{Value: 9, Suit: SuitClub},
	}

	got := RemoveCards(hand, []Card{{Value: 5, Suit: SuitSpade}})
	if len(got) != 2 {
		t.Fatalf("hand size = %d, want 2", len(got))
	}
	// Only one of the two identical cards goes.
	fives := 0
	for _, c := range got {
		if c.Value == 5 {
			fives++
		}
	}
	if fives != 1 {
		t.Fatalf("fives remaining = %d, want 1", fives)
	}

	got = RemoveCards(got, []Card{{Value: 1, Suit: SuitHeart}})
	if len(got) != 2 {
		t.Fatalf("removing an absent card changed the hand: %v", got)
	}
}

func TestIsLyingClaim(t *testing.T) {
	tests := []struct {
		name   string
		played []Card
		target int
		lying  bool
	}{
		{"truthful single", []Card{{Value: 7, Suit: SuitSpade}}, 7, false},
		{"plain lie", []Card{{Value: 3, Suit: SuitSpade}}, 7, true},
		{"joker is wild", []Card{{Value: ValueSmallJoker, Suit: SuitJoker}}, 7, false},
		{"big joker is wild", []Card{{Value: ValueBigJoker, Suit: SuitJoker}}, 2, false},
		{"truth plus joker", []Card{{Value: 7, Suit: SuitSpade}, {Value: ValueBigJoker, Suit: SuitJoker}}, 7, false},
		{"one bad card convicts", []Card{{Value: 7, Suit: SuitSpade}, {Value: 8, Suit: SuitHeart}}, 7, true},
		{"empty pile", nil, 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLyingClaim(tt.played, tt.target); got != tt.lying {
				t.Fatalf("IsLyingClaim() = %v, want %v", got, tt.lying)
			}
		})
	}
}
