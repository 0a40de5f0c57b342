package engine

// Seat is one agent's place at the table. Stack persists across hands;
// the per-hand fields are reset by Hand setup.
type Seat struct {
	Name            string
	Stack           int
	Hole            []Card
	Folded          bool
	AllIn           bool
	CurrentRoundBet int
	Disqualified    bool
}

// Table is the persistent seating and chip-tracking structure a session
// mutates hand after hand. Seat order is fixed; only the button moves.
type Table struct {
	Seats  []*Seat
	Button int
}

func NewTable() *Table { return &Table{} }

func (t *Table) AddSeat(name string, stack int) {
	t.Seats = append(t.Seats, &Seat{Name: name, Stack: stack})
}

// FundedCount reports how many seats can still buy into a hand.
func (t *Table) FundedCount() int {
	n := 0
	for _, s := range t.Seats {
		if s.Stack > 0 {
			n++
		}
	}
	return n
}

// nextFunded finds the first seat with chips at or after start, wrapping
// around the table. Degenerates to start when nobody is funded.
func (t *Table) nextFunded(start int) int {
	idx := start % len(t.Seats)
	for range t.Seats {
		if t.Seats[idx].Stack > 0 {
			return idx
		}
		idx = (idx + 1) % len(t.Seats)
	}
	return start % len(t.Seats)
}

// survivors returns the seats still contesting the pot (not folded,
// all-in included).
func (t *Table) survivors() []*Seat {
	var out []*Seat
	for _, s := range t.Seats {
		if !s.Folded {
			out = append(out, s)
		}
	}
	return out
}

// actable counts seats that can still take a turn this street.
func (t *Table) actable() int {
	n := 0
	for _, s := range t.Seats {
		if !s.Folded && !s.AllIn {
			n++
		}
	}
	return n
}

// rotateButton moves the button one seat, busted seats included.
func (t *Table) rotateButton() {
	t.Button = (t.Button + 1) % len(t.Seats)
}
