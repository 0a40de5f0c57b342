package agent

import (
	"math/rand"

	"holdem-arena/arena/engine"
)

const equityIters = 200

// EquityBot estimates its win probability by Monte Carlo rollout against a
// random villain hand and plays pot odds against the estimate.
type EquityBot struct {
	name   string
	rng    *rand.Rand
	oracle engine.PHOracle
}

func NewEquityBot(name string) Agent {
	return &EquityBot{name: name, rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (b *EquityBot) Name() string { return b.name }

func (b *EquityBot) Decide(view engine.PlayerView) engine.Action {
	hole, ok := parseCards(view.Hole)
	if !ok || len(hole) != 2 {
		return engine.Action{Kind: engine.CheckCall}
	}
	board, ok := parseCards(view.Community)
	if !ok {
		return engine.Action{Kind: engine.CheckCall}
	}

	eq := b.equity(hole, board)

	if view.CurrentBet == 0 {
		if eq > 0.6 {
			return engine.Action{Kind: engine.Raise, Amount: view.MinRaise}
		}
		return engine.Action{Kind: engine.CheckCall}
	}
	// Facing a bet: compare equity to the price of the call.
	price := float64(view.CurrentBet) / float64(view.Pot+view.CurrentBet)
	switch {
	case eq > 0.75:
		return engine.Action{Kind: engine.Raise, Amount: view.MinRaise}
	case eq >= price:
		return engine.Action{Kind: engine.CheckCall}
	default:
		return engine.Action{Kind: engine.Fold}
	}
}

// equity runs rollouts: deal the villain a random hand, complete the board,
// score both sides. Ties count half.
func (b *EquityBot) equity(hole, board []engine.Card) float64 {
	used := make(map[engine.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		used[c] = true
	}
	for _, c := range board {
		used[c] = true
	}
	var stub []engine.Card
	for _, s := range []byte("cdhs") {
		for r := 2; r <= 14; r++ {
			c := engine.Card{Rank: r, Suit: s}
			if !used[c] {
				stub = append(stub, c)
			}
		}
	}

	need := 5 - len(board)
	wins := 0.0
	for it := 0; it < equityIters; it++ {
		b.rng.Shuffle(len(stub), func(i, j int) { stub[i], stub[j] = stub[j], stub[i] })
		villain := stub[:2]
		runout := append(append([]engine.Card{}, board...), stub[2:2+need]...)
		hs, _ := b.oracle.Rank(runout, hole)
		vs, _ := b.oracle.Rank(runout, villain)
		if hs < vs {
			wins++
		} else if hs == vs {
			wins += 0.5
		}
	}
	return wins / float64(equityIters)
}

func parseCards(ss []string) ([]engine.Card, bool) {
	out := make([]engine.Card, 0, len(ss))
	for _, s := range ss {
		c, err := engine.ParseCard(s)
		if err != nil {
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}
