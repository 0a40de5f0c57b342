package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tieOracle scores every hand identically so the pot always splits.
type tieOracle struct{}

func (tieOracle) Rank(_, _ []Card) (int, string) { return 0, "tie" }

// firstCardOracle scores by the first hole card alone (rank then suit),
// so every seat gets a distinct score and showdowns never tie.
type firstCardOracle struct{}

func (firstCardOracle) Rank(_, hole []Card) (int, string) {
	return -(hole[0].Rank*4 + int(hole[0].Suit)), "high card"
}

func newPlayableHand(tbl *Table, src ActionSource, oracle RankingOracle) *Hand {
	return NewHand("h1", Config{SmallBlind: 10, BigBlind: 20},
		tbl, oracle, src, NewDeck(99), zerolog.Nop())
}

func totalChips(tbl *Table) int {
	sum := 0
	for _, s := range tbl.Seats {
		sum += s.Stack
	}
	return sum
}

func TestPlayNotEnoughPlayers(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 100)
	tbl.AddSeat("b", 0)
	h := newPlayableHand(tbl, &stubSource{}, tieOracle{})

	_, err := h.Play(context.Background())
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestPlayHeadsUpShortStackBlinds(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("short", 15)
	tbl.AddSeat("deep", 1000)
	tbl.Button = 1 // short stack posts the small blind

	src := &stubSource{decisions: map[int][]SeatDecision{}} // everyone check-calls
	h := newPlayableHand(tbl, src, tieOracle{})

	before := totalChips(tbl)
	res, err := h.Play(context.Background())
	require.NoError(t, err)

	short := tbl.Seats[0]
	assert.True(t, short.AllIn)
	assert.False(t, short.Folded)
	assert.Equal(t, ByShowdown, res.Method)
	// blinds 10+20, short's all-in call of 5: pot 35, split 17 each,
	// remainder dropped.
	assert.Equal(t, 35, res.Pot)
	assert.Equal(t, before-1, totalChips(tbl))
}

func TestPlaySingleFoldEndsHandEarly(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 1000)
	tbl.AddSeat("b", 1000)
	tbl.AddSeat("c", 1000)

	// Pre-flop: a (first to act after bb) raises, b and c fold.
	src := &stubSource{decisions: map[int][]SeatDecision{
		0: {raiseTo(60)},
		1: {fold()},
		2: {fold()},
	}}
	h := newPlayableHand(tbl, src, tieOracle{})

	before := totalChips(tbl)
	res, err := h.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ByFold, res.Method)
	assert.Equal(t, []string{"a"}, res.Winners)
	assert.Empty(t, h.board, "streets were skipped")
	assert.Equal(t, 90, res.Pot) // 60 + blinds 10+20
	assert.Equal(t, 1030, tbl.Seats[0].Stack)
	assert.Equal(t, before, totalChips(tbl))
	assert.Equal(t, 1, tbl.Button, "button advances after an early win")
}

func TestShowdownSplitPotDropsRemainder(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 500)
	tbl.AddSeat("b", 500)
	for _, s := range tbl.Seats {
		s.Hole = []Card{{Rank: 14, Suit: 'h'}, {Rank: 2, Suit: 'c'}}
	}
	h := &Hand{
		ID:     "split",
		cfg:    Config{SmallBlind: 10, BigBlind: 20},
		tbl:    tbl,
		oracle: tieOracle{},
		log:    zerolog.Nop(),
		pot:    101,
	}

	res := h.showdown()
	assert.ElementsMatch(t, []string{"a", "b"}, res.Winners)
	assert.Equal(t, 550, tbl.Seats[0].Stack)
	assert.Equal(t, 550, tbl.Seats[1].Stack)
}

func TestPlayFullHandChipConservation(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 1000)
	tbl.AddSeat("b", 1000)
	tbl.AddSeat("c", 1000)

	src := &stubSource{decisions: map[int][]SeatDecision{
		0: {call(), raiseTo(80)},
		1: {call(), call()},
		2: {call(), fold()},
	}}
	h := newPlayableHand(tbl, src, firstCardOracle{})

	before := totalChips(tbl)
	res, err := h.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ByShowdown, res.Method)
	assert.Len(t, res.Winners, 1)
	assert.Equal(t, before, totalChips(tbl))
	for _, s := range tbl.Seats {
		assert.GreaterOrEqual(t, s.Stack, 0)
	}
	assert.Equal(t, 5, len(h.board))
	assert.Equal(t, 1, tbl.Button)
}

func TestPlayBustedSeatIsAutoFolded(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 1000)
	tbl.AddSeat("busted", 0)
	tbl.AddSeat("c", 1000)

	src := &stubSource{decisions: map[int][]SeatDecision{}}
	h := newPlayableHand(tbl, src, tieOracle{})

	_, err := h.Play(context.Background())
	require.NoError(t, err)
	assert.True(t, tbl.Seats[1].Folded)
	assert.Empty(t, tbl.Seats[1].Hole)
	assert.NotContains(t, src.calls, 1)
}
