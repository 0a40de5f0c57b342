package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
)

// Config carries the stakes a session plays at. Starting stacks are set
// when seats are added to the Table.
type Config struct {
	SmallBlind int
	BigBlind   int
}

var ErrNotEnoughPlayers = errors.New("engine: need at least two funded seats")

// Hand runs one complete hand over a Table. Build one per hand with
// NewHand; a Hand is not reusable after Play returns.
type Hand struct {
	ID     string
	cfg    Config
	tbl    *Table
	oracle RankingOracle
	src    ActionSource
	log    zerolog.Logger

	deck      []Card
	board     []Card
	pot       int
	activeBet int
}

func NewHand(id string, cfg Config, tbl *Table, oracle RankingOracle, src ActionSource, deck []Card, log zerolog.Logger) *Hand {
	return &Hand{
		ID:     id,
		cfg:    cfg,
		tbl:    tbl,
		oracle: oracle,
		src:    src,
		log:    log.With().Str("hand", id).Logger(),
		deck:   deck,
	}
}

// Play drives the hand from blinds to payout and reports the result.
// The button advances on every completion path, early wins included.
func (h *Hand) Play(ctx context.Context) (*HandResult, error) {
	for _, s := range h.tbl.Seats {
		s.Folded = s.Stack <= 0
		s.AllIn = false
		s.Hole = nil
		s.CurrentRoundBet = 0
	}
	if h.tbl.FundedCount() < 2 {
		return nil, ErrNotEnoughPlayers
	}

	sbIdx := h.tbl.nextFunded(h.tbl.Button + 1)
	bbIdx := h.tbl.nextFunded(sbIdx + 1)
	h.postBlind(sbIdx, h.cfg.SmallBlind)
	h.postBlind(bbIdx, h.cfg.BigBlind)
	for _, s := range h.tbl.Seats {
		if s.CurrentRoundBet > h.activeBet {
			h.activeBet = s.CurrentRoundBet
		}
	}
	h.log.Debug().
		Str("sb", h.tbl.Seats[sbIdx].Name).
		Str("bb", h.tbl.Seats[bbIdx].Name).
		Int("pot", h.pot).
		Msg("blinds posted")

	for _, s := range h.tbl.Seats {
		if !s.Folded {
			s.Hole = []Card{h.draw(), h.draw()}
		}
	}

	if err := h.bettingRound(ctx, bbIdx+1); err != nil {
		return nil, err
	}
	if res := h.earlyWin(); res != nil {
		return h.finish(res), nil
	}

	for _, n := range []int{3, 1, 1} {
		h.resetRoundBets()
		for i := 0; i < n; i++ {
			h.board = append(h.board, h.draw())
		}
		h.log.Debug().Strs("board", cardStrings(h.board)).Msg("street dealt")
		if err := h.bettingRound(ctx, h.tbl.Button+1); err != nil {
			return nil, err
		}
		if res := h.earlyWin(); res != nil {
			return h.finish(res), nil
		}
	}

	return h.finish(h.showdown()), nil
}

func (h *Hand) postBlind(idx, amount int) {
	s := h.tbl.Seats[idx]
	if amount > s.Stack {
		amount = s.Stack
	}
	s.Stack -= amount
	s.CurrentRoundBet += amount
	h.pot += amount
	if s.Stack == 0 {
		s.AllIn = true
	}
}

func (h *Hand) draw() Card {
	c := h.deck[0]
	h.deck = h.deck[1:]
	return c
}

func (h *Hand) resetRoundBets() {
	h.activeBet = 0
	for _, s := range h.tbl.Seats {
		s.CurrentRoundBet = 0
	}
}

// earlyWin pays the whole pot to the last unfolded seat, if only one
// remains. Returns nil while the hand is still contested.
func (h *Hand) earlyWin() *HandResult {
	alive := h.tbl.survivors()
	if len(alive) != 1 {
		return nil
	}
	w := alive[0]
	w.Stack += h.pot
	h.log.Info().Str("winner", w.Name).Int("pot", h.pot).Msg("hand won uncontested")
	return &HandResult{ID: h.ID, Winners: []string{w.Name}, Pot: h.pot, Method: ByFold}
}

// showdown ranks every surviving seat and splits the pot among the
// strongest. Integer division; the remainder stays off the table.
func (h *Hand) showdown() *HandResult {
	type entry struct {
		seat  *Seat
		score int
		class string
	}
	var entries []entry
	for _, s := range h.tbl.survivors() {
		score, class := h.oracle.Rank(h.board, s.Hole)
		entries = append(entries, entry{seat: s, score: score, class: class})
		h.log.Info().
			Str("player", s.Name).
			Strs("hole", cardStrings(s.Hole)).
			Str("hand", class).
			Msg("shows")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].score < entries[j].score })

	best := entries[0].score
	var winners []string
	for _, e := range entries {
		if e.score == best {
			winners = append(winners, e.seat.Name)
		}
	}
	share := h.pot / len(winners)
	for _, e := range entries {
		if e.score == best {
			e.seat.Stack += share
		}
	}
	h.log.Info().
		Strs("winners", winners).
		Int("pot", h.pot).
		Int("share", share).
		Msg("showdown")
	return &HandResult{ID: h.ID, Winners: winners, Pot: h.pot, Method: ByShowdown}
}

func (h *Hand) finish(res *HandResult) *HandResult {
	h.tbl.rotateButton()
	return res
}
