package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgentStatsRates(t *testing.T) {
	st := &AgentStats{Sims: 10, Wins: 4, HandsPlayed: 200, NetChips: 800}
	assert.InDelta(t, 40.0, st.WinPct(), 1e-9)
	// 800 chips / 20bb = 40bb over 200 hands = 20bb/100.
	assert.InDelta(t, 20.0, st.BBPer100(20), 1e-9)
}

func TestAgentStatsEmpty(t *testing.T) {
	st := &AgentStats{}
	assert.Equal(t, 0.0, st.WinPct())
	assert.Equal(t, 0.0, st.BBPer100(20))
	assert.Equal(t, 0.0, (&AgentStats{HandsPlayed: 10}).BBPer100(0))
}

func TestWilsonCI95(t *testing.T) {
	low, hi := WilsonCI95(60, 0, 100)
	assert.Greater(t, low, 0.0)
	assert.Less(t, hi, 1.0)
	assert.Less(t, low, 0.6)
	assert.Greater(t, hi, 0.6)

	low, hi = WilsonCI95(0, 0, 0)
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 1.0, hi)

	// Ties count as half a win.
	lowT, hiT := WilsonCI95(50, 20, 100)
	mid := (lowT + hiT) / 2
	assert.InDelta(t, 0.6, mid, 0.05)
}
