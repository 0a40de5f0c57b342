package engine

import "context"

// ActionKind enumerates the decisions an agent can return.
type ActionKind int

const (
	Fold ActionKind = iota
	CheckCall
	Raise
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case CheckCall:
		return "check_call"
	case Raise:
		return "raise"
	}
	return "unknown"
}

// Action is a seat's decision for one turn. For Raise, Amount is the total
// the seat's current-round contribution should reach, not the increment.
type Action struct {
	Kind   ActionKind
	Amount int
}

// PlayerView is the read-only projection handed to an agent. It never
// exposes other seats' hole cards, stacks or bet history.
type PlayerView struct {
	Name       string   `json:"name"`
	Hole       []string `json:"hole_cards"`
	Community  []string `json:"community_cards"`
	Stack      int      `json:"stack"`
	CurrentBet int      `json:"current_bet"` // chips needed to match the street's bet
	Pot        int      `json:"pot"`
	MinRaise   int      `json:"min_raise"` // minimum legal raise-to total
}

// ResolutionMethod records how a hand was decided.
type ResolutionMethod string

const (
	ByFold     ResolutionMethod = "fold"
	ByShowdown ResolutionMethod = "showdown"
)

// HandResult is the record of one completed hand.
type HandResult struct {
	ID      string
	Winners []string
	Pot     int
	Method  ResolutionMethod
}

// SeatDecision carries the action the engine should apply for a seat, plus
// the sandbox's verdict on whether the seat must be disqualified.
type SeatDecision struct {
	Action     Action
	Disqualify bool
}

// ActionSource supplies decisions for acting seats, indexed by seat
// position. The sandbox implements this; tests script it directly.
type ActionSource interface {
	Act(ctx context.Context, seatIdx int, view PlayerView) SeatDecision
}

// RankingOracle scores a completed hand. Lower scores are stronger; the
// class string is a human-readable description of the made hand.
type RankingOracle interface {
	Rank(board, hole []Card) (score int, class string)
}
