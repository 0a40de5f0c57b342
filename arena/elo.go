package main

import "math"

// EloTable tracks a rating per agent name and applies pairwise updates
// after each simulation, K tempered by chip margin and a slow anneal.
type EloTable struct {
	K       float64
	Ratings map[string]float64
	games   map[string]int
}

func NewEloTable(k float64) *EloTable {
	return &EloTable{K: k, Ratings: make(map[string]float64), games: make(map[string]int)}
}

func (t *EloTable) Rating(name string) float64 {
	if r, ok := t.Ratings[name]; ok {
		return r
	}
	return 1500
}

// UpdatePair applies one A-vs-B result. chipsA is A's chip margin over B
// for the simulation; bb normalizes it.
func (t *EloTable) UpdatePair(a, b string, chipsA, bb int) (dA, dB float64) {
	ra, rb := t.Rating(a), t.Rating(b)
	ea := 1.0 / (1.0 + math.Pow(10, (rb-ra)/400.0))
	eb := 1.0 - ea

	// soft score from chip margin (normalized in BBs)
	lambdaBB := 6.0
	sA := ScoreFromMargin(chipsA, lambdaBB*float64(bb), 1)
	sB := 1.0 - sA

	kA := t.K * marginScale(chipsA, bb) * decay(t.games[a])
	kB := t.K * marginScale(chipsA, bb) * decay(t.games[b])

	dA = kA * (sA - ea)
	dB = kB * (sB - eb)
	t.Ratings[a] = ra + dA
	t.Ratings[b] = rb + dB
	t.games[a]++
	t.games[b]++
	return dA, dB
}

// ---- helpers ----

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func marginScale(chips, bb int) float64 {
	if bb <= 0 {
		return 1.0
	}
	m := math.Abs(float64(chips)) / float64(bb) // in BBs
	return clamp(1.0+0.35*math.Tanh(m/8.0), 1.0, 1.35)
}

func decay(games int) float64 {
	return 1.0 / (1.0 + 0.01*float64(games)) // slow anneal
}
