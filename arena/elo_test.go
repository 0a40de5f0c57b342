package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEloWinnerGainsLoserDrops(t *testing.T) {
	table := NewEloTable(24)
	dA, dB := table.UpdatePair("a", "b", 2000, 20)

	assert.Greater(t, dA, 0.0)
	assert.Less(t, dB, 0.0)
	assert.Greater(t, table.Rating("a"), 1500.0)
	assert.Less(t, table.Rating("b"), 1500.0)
}

func TestEloZeroMarginMovesNothing(t *testing.T) {
	table := NewEloTable(24)
	dA, dB := table.UpdatePair("a", "b", 0, 20)
	assert.InDelta(t, 0, dA, 1e-9)
	assert.InDelta(t, 0, dB, 1e-9)
}

func TestEloFavoriteGainsLessFromExpectedWin(t *testing.T) {
	table := NewEloTable(24)
	table.Ratings["fav"] = 1800
	table.Ratings["dog"] = 1200

	dFav, _ := table.UpdatePair("fav", "dog", 2000, 20)

	fresh := NewEloTable(24)
	dEven, _ := fresh.UpdatePair("a", "b", 2000, 20)
	assert.Less(t, dFav, dEven)
}

func TestEloBiggerMarginMovesMore(t *testing.T) {
	small := NewEloTable(24)
	dSmall, _ := small.UpdatePair("a", "b", 20, 20)

	big := NewEloTable(24)
	dBig, _ := big.UpdatePair("a", "b", 2000, 20)

	assert.Greater(t, dBig, dSmall)
	// Zero big blind degrades to an even score, not a division blowup.
	degen := NewEloTable(24)
	dA, dB := degen.UpdatePair("a", "b", 500, 0)
	assert.InDelta(t, 0, dA, 1e-9)
	assert.InDelta(t, 0, dB, 1e-9)
}

func TestEloAnnealShrinksUpdates(t *testing.T) {
	table := NewEloTable(24)
	first, _ := table.UpdatePair("a", "b", 1000, 20)
	var last float64
	for i := 0; i < 50; i++ {
		last, _ = table.UpdatePair("a", "b", 1000, 20)
	}
	// The expectation gap widens and K anneals; late updates are smaller.
	assert.Less(t, last, first)
}
