package agent

import (
	"math/rand"

	"holdem-arena/arena/engine"
)

// CallBot matches whatever is in front of it, forever.
type CallBot struct{ name string }

func NewCallBot(name string) Agent { return &CallBot{name: name} }

func (b *CallBot) Name() string { return b.name }

func (b *CallBot) Decide(view engine.PlayerView) engine.Action {
	return engine.Action{Kind: engine.CheckCall}
}

// AggroBot bets when unchallenged and re-raises half the time when facing
// a bet.
type AggroBot struct {
	name string
	rng  *rand.Rand
}

func NewAggroBot(name string) Agent {
	return &AggroBot{name: name, rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (b *AggroBot) Name() string { return b.name }

func (b *AggroBot) Decide(view engine.PlayerView) engine.Action {
	if view.CurrentBet == 0 {
		return engine.Action{Kind: engine.Raise, Amount: view.MinRaise}
	}
	if b.rng.Float64() < 0.5 {
		return engine.Action{Kind: engine.Raise, Amount: view.CurrentBet*2 + view.MinRaise}
	}
	return engine.Action{Kind: engine.CheckCall}
}

// RandomBot folds 20%, calls 50%, raises 30%.
type RandomBot struct {
	name string
	rng  *rand.Rand
}

func NewRandomBot(name string) Agent {
	return &RandomBot{name: name, rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (b *RandomBot) Name() string { return b.name }

func (b *RandomBot) Decide(view engine.PlayerView) engine.Action {
	switch roll := b.rng.Float64(); {
	case roll < 0.2:
		return engine.Action{Kind: engine.Fold}
	case roll < 0.7:
		return engine.Action{Kind: engine.CheckCall}
	default:
		return engine.Action{Kind: engine.Raise, Amount: view.MinRaise + 100}
	}
}
