package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Card holds rank 2..14 (ace high) and a suit byte from "cdhs".
type Card struct {
	Rank int
	Suit byte
}

const rankChars = "  23456789TJQKA"

func (c Card) String() string {
	return fmt.Sprintf("%c%c", rankChars[c.Rank], c.Suit)
}

// ParseCard reads the two-character notation used at the agent boundary,
// e.g. "Ah" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("bad card %q: want two characters", s)
	}
	rank := strings.IndexByte(rankChars, s[0])
	if rank < 2 {
		return Card{}, fmt.Errorf("bad card %q: unknown rank %q", s, s[0])
	}
	switch s[1] {
	case 'c', 'd', 'h', 's':
	default:
		return Card{}, fmt.Errorf("bad card %q: unknown suit %q", s, s[1])
	}
	return Card{Rank: rank, Suit: s[1]}, nil
}

// NewDeck returns a freshly shuffled 52-card deck. A zero seed picks one
// from the wall clock.
func NewDeck(seed int64) []Card {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	deck := make([]Card, 0, 52)
	for _, s := range []byte("cdhs") {
		for rnk := 2; rnk <= 14; rnk++ {
			deck = append(deck, Card{Rank: rnk, Suit: s})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

func cardStrings(cs []Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
