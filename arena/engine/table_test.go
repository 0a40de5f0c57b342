package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFundedSkipsBusted(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 100)
	tbl.AddSeat("b", 0)
	tbl.AddSeat("c", 100)

	assert.Equal(t, 2, tbl.nextFunded(1))
	assert.Equal(t, 0, tbl.nextFunded(3)) // wraps
	assert.Equal(t, 0, tbl.nextFunded(0))
}

func TestNextFundedNobodyFunded(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 0)
	tbl.AddSeat("b", 0)
	assert.Equal(t, 1, tbl.nextFunded(1))
}

func TestRotateButtonIncludesBusted(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 100)
	tbl.AddSeat("b", 0)
	tbl.AddSeat("c", 100)

	tbl.rotateButton()
	assert.Equal(t, 1, tbl.Button) // busted seat still holds the button
	tbl.rotateButton()
	tbl.rotateButton()
	assert.Equal(t, 0, tbl.Button)
}

func TestCounts(t *testing.T) {
	tbl := NewTable()
	tbl.AddSeat("a", 100)
	tbl.AddSeat("b", 50)
	tbl.AddSeat("c", 0)
	assert.Equal(t, 2, tbl.FundedCount())

	tbl.Seats[0].Folded = true
	tbl.Seats[1].AllIn = true
	assert.Equal(t, 0, tbl.actable())
	assert.Len(t, tbl.survivors(), 2)
}
