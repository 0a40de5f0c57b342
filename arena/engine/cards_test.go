package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardRoundTrip(t *testing.T) {
	for _, s := range []byte("cdhs") {
		for r := 2; r <= 14; r++ {
			c := Card{Rank: r, Suit: s}
			parsed, err := ParseCard(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "A", "Ahh", "1h", "Ax", "Zs", "h2"} {
		_, err := ParseCard(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNewDeckComplete(t *testing.T) {
	deck := NewDeck(7)
	require.Len(t, deck, 52)
	seen := make(map[Card]bool, 52)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestNewDeckSeedDeterminism(t *testing.T) {
	a := NewDeck(42)
	b := NewDeck(42)
	assert.Equal(t, a, b)
}
