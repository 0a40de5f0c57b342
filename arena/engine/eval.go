package engine

import (
	poker "github.com/paulhankin/poker"
)

// PHOracle ranks hands with the paulhankin evaluator. Library scores grow
// with strength, so they are negated here to keep lower-is-stronger
// ordering at the boundary.
type PHOracle struct{}

func (PHOracle) Rank(board, hole []Card) (int, string) {
	all := append(append([]Card{}, hole...), board...)
	pcs := make([]poker.Card, len(all))
	for i, c := range all {
		pcs[i] = toPH(c)
	}
	var score int16
	switch len(pcs) {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		score = poker.Eval7(&a7)
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		score = poker.Eval5(&a5)
	default:
		score = bestFive(pcs)
	}
	class := ""
	if d, err := poker.Describe(pcs); err == nil {
		class = d
	}
	return -int(score), class
}

// Convert engine card -> library card.
func toPH(c Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	case 's':
		s = poker.Spade
	default:
		s = poker.Club
	}
	// Our ranks: 2..14 (Ace=14). Library: 1..13 (Ace=1).
	var r poker.Rank
	if c.Rank == 14 {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(c.Rank)
	}
	card, _ := poker.MakeCard(s, r)
	return card
}

// bestFive scores the strongest 5-card subset of a 6-card view.
func bestFive(pcs []poker.Card) int16 {
	n := len(pcs)
	best := int16(-32768)
	choose := [5]int{}
	var five [5]poker.Card
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = pcs[choose[i]]
			}
			if score := poker.Eval5(&five); score > best {
				best = score
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}
