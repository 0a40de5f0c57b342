package main

import "math"

// AgentStats aggregates one agent's results across simulations.
type AgentStats struct {
	Sims        int
	Wins        int
	HandsPlayed int
	NetChips    int
}

func (s *AgentStats) WinPct() float64 {
	if s.Sims == 0 {
		return 0
	}
	return 100.0 * float64(s.Wins) / float64(s.Sims)
}

func (s *AgentStats) BBPer100(bb int) float64 {
	if s.HandsPlayed == 0 || bb <= 0 {
		return 0
	}
	return (float64(s.NetChips) / float64(bb)) / (float64(s.HandsPlayed) / 100.0)
}

// WilsonCI95 for a Bernoulli win rate over wins/ties/total.
func WilsonCI95(wins, ties, total int) (low, hi float64) {
	if total <= 0 {
		return 0, 1
	}
	z := 1.96
	n := float64(total)
	p := (float64(wins) + 0.5*float64(ties)) / n
	den := 1 + (z*z)/n
	center := p + (z*z)/(2*n)
	half := z * math.Sqrt((p*(1-p))/n+(z*z)/(4*n*n))
	return (center - half) / den, (center + half) / den
}
