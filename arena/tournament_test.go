package main

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-arena/arena/agent"
)

func testTournamentConfig() Config {
	return Config{
		SmallBlind:    10,
		BigBlind:      20,
		StartStack:    500,
		Simulations:   2,
		SubsetSize:    10,
		MaxHands:      10,
		Parallelism:   2,
		ActionTimeout: time.Second,
		AgentMemLimit: 1 << 30,
		Agents:        []string{"caller", "randy"},
		DeckSeed:      1234,
	}
}

func testRegistry() *agent.Registry {
	reg := agent.NewRegistry()
	reg.Register("caller", agent.NewCallBot)
	reg.Register("randy", agent.NewRandomBot)
	return reg
}

func TestTournamentRunProducesResults(t *testing.T) {
	cfg := testTournamentConfig()
	tour := NewTournament(cfg, testRegistry(), zerolog.Nop())

	res, err := tour.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Sims, 2)

	for _, sr := range res.Sims {
		assert.NotEmpty(t, sr.ID)
		assert.NotEmpty(t, sr.Winner)
		assert.Greater(t, sr.Hands, 0)
		assert.LessOrEqual(t, sr.Hands, cfg.MaxHands)
		// Split-pot remainders can leak chips out, never in.
		sum := 0
		for _, n := range sr.Net {
			sum += n
		}
		assert.LessOrEqual(t, sum, 0)
	}

	for _, name := range cfg.Agents {
		st := res.Stats[name]
		require.NotNil(t, st)
		assert.Equal(t, 2, st.Sims)
		gl := res.Glicko[name]
		require.NotNil(t, gl)
		assert.Equal(t, 2, gl.Games)
	}
	assert.Len(t, res.Elo.Ratings, 2)
	assert.Equal(t, 1500.0, res.Elo.Rating("unknown"))
}

func TestTournamentDerivesSimCount(t *testing.T) {
	cfg := testTournamentConfig()
	cfg.Simulations = 0
	cfg.MaxHands = 2
	tour := NewTournament(cfg, testRegistry(), zerolog.Nop())

	res, err := tour.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Sims, 10)
}

func TestTournamentSubsetSampling(t *testing.T) {
	cfg := testTournamentConfig()
	cfg.SubsetSize = 2
	cfg.Agents = []string{"caller", "randy", "caller2", "randy2"}
	cfg.Simulations = 3
	cfg.MaxHands = 2

	reg := testRegistry()
	reg.Register("caller2", agent.NewCallBot)
	reg.Register("randy2", agent.NewRandomBot)
	tour := NewTournament(cfg, reg, zerolog.Nop())

	res, err := tour.Run(context.Background())
	require.NoError(t, err)
	for _, sr := range res.Sims {
		assert.Len(t, sr.Roster, 2)
	}
}

func TestSampleSubset(t *testing.T) {
	roster := []string{"a", "b", "c", "d", "e"}
	got := sampleSubset(rand.New(rand.NewSource(1)), roster, 3)
	assert.Len(t, got, 3)
	seen := map[string]bool{}
	for _, n := range got {
		assert.Contains(t, roster, n)
		assert.False(t, seen[n])
		seen[n] = true
	}
	assert.Len(t, roster, 5, "input roster untouched")
}

func TestSeedStreamDeterministic(t *testing.T) {
	a := newSeedStream(9)
	b := newSeedStream(9)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.next(), b.next())
	}
	c := newSeedStream(10)
	d := newSeedStream(9)
	assert.NotEqual(t, d.next(), c.next())
}
