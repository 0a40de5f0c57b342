package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlicko2WinRaisesRating(t *testing.T) {
	winner := NewGlicko2()
	loser := NewGlicko2()
	wSnap, lSnap := winner.Copy(), loser.Copy()

	winner.UpdateBatch([]OpponentResult{{Opp: lSnap, S: 1}}, 0.5)
	loser.UpdateBatch([]OpponentResult{{Opp: wSnap, S: 0}}, 0.5)

	assert.Greater(t, winner.Rating, 1500.0)
	assert.Less(t, loser.Rating, 1500.0)
	assert.Less(t, winner.RD, 350.0, "playing shrinks uncertainty")
	assert.Equal(t, 1, winner.Games)
}

func TestGlicko2BatchAgainstMixedField(t *testing.T) {
	a := NewGlicko2()
	opps := []OpponentResult{
		{Opp: NewGlicko2(), S: 1},
		{Opp: NewGlicko2With(1700, 300, 0.06), S: 0.5},
		{Opp: NewGlicko2With(1400, 100, 0.06), S: 0},
	}
	a.UpdateBatch(opps, 0.5)
	assert.InDelta(t, 1500, a.Rating, 200)
	assert.Less(t, a.RD, 350.0)
}

func TestGlicko2AgeGrowsUncertainty(t *testing.T) {
	a := NewGlicko2With(1600, 80, 0.06)
	a.Age()
	assert.Equal(t, 1600.0, a.Rating)
	assert.Greater(t, a.RD, 80.0)
}

func TestGlicko2EmptyPeriodAges(t *testing.T) {
	a := NewGlicko2With(1550, 120, 0.06)
	a.UpdateBatch(nil, 0.5)
	assert.Equal(t, 1550.0, a.Rating)
	assert.Greater(t, a.RD, 120.0)
}

func TestScoreHelpers(t *testing.T) {
	assert.Equal(t, 1.0, ScoreFromWL(true, false))
	assert.Equal(t, 0.0, ScoreFromWL(false, false))
	assert.Equal(t, 0.5, ScoreFromWL(false, true))

	assert.Equal(t, 0.5, ScoreFromMargin(0, 2000, 1))
	assert.Greater(t, ScoreFromMargin(500, 2000, 1), 0.5)
	assert.Less(t, ScoreFromMargin(-500, 2000, 1), 0.5)
	assert.Equal(t, 0.5, ScoreFromMargin(100, 0, 1))
}
