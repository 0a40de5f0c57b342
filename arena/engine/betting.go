package engine

import "context"

// bettingRound runs one street of action starting at startIdx. A seat's
// turn is settled-check first: the round ends when the seat to act has
// matched the active bet and the to-act counter is exhausted. A raise
// above the active bet reopens action for every other actable seat; a
// seat whose contribution lags the active bet always gets a turn, counter
// or not.
func (h *Hand) bettingRound(ctx context.Context, startIdx int) error {
	playersToAct := h.tbl.actable()
	if playersToAct <= 1 {
		return nil
	}

	n := len(h.tbl.Seats)
	idx := startIdx % n
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := h.tbl.Seats[idx]
		if s.Folded || s.AllIn {
			idx = (idx + 1) % n
			continue
		}
		if s.CurrentRoundBet == h.activeBet && playersToAct <= 0 {
			return nil
		}

		toCall := h.activeBet - s.CurrentRoundBet
		minRaise := h.activeBet + h.cfg.BigBlind

		var dec SeatDecision
		if s.Disqualified {
			dec = SeatDecision{Action: Action{Kind: Fold}}
		} else {
			dec = h.src.Act(ctx, idx, PlayerView{
				Name:       s.Name,
				Hole:       cardStrings(s.Hole),
				Community:  cardStrings(h.board),
				Stack:      s.Stack,
				CurrentBet: toCall,
				Pot:        h.pot,
				MinRaise:   minRaise,
			})
		}
		if dec.Disqualify && !s.Disqualified {
			s.Disqualified = true
			s.Stack = 0
			h.log.Warn().Str("player", s.Name).Msg("disqualified, chips forfeited")
		}

		switch dec.Action.Kind {
		case Fold:
			s.Folded = true
			h.log.Debug().Str("player", s.Name).Msg("folds")
			if len(h.tbl.survivors()) == 1 {
				return nil
			}
		case CheckCall:
			cost := toCall
			if cost > s.Stack {
				cost = s.Stack
			}
			s.Stack -= cost
			s.CurrentRoundBet += cost
			h.pot += cost
			if s.Stack == 0 {
				s.AllIn = true
			}
			h.log.Debug().Str("player", s.Name).Int("cost", cost).Msg("checks or calls")
		case Raise:
			target := dec.Action.Amount
			// An undersized raise is bumped to the minimum unless the
			// seat is pushing its whole stack.
			if target < minRaise && target < s.Stack {
				target = minRaise
			}
			cost := target - s.CurrentRoundBet
			if cost < 0 {
				cost = 0
			}
			if cost > s.Stack {
				cost = s.Stack
			}
			s.Stack -= cost
			s.CurrentRoundBet += cost
			h.pot += cost
			if s.Stack == 0 {
				s.AllIn = true
			}
			h.log.Debug().
				Str("player", s.Name).
				Int("to", s.CurrentRoundBet).
				Bool("all_in", s.AllIn).
				Msg("raises")
			if s.CurrentRoundBet > h.activeBet {
				h.activeBet = s.CurrentRoundBet
				playersToAct = h.tbl.actable() - 1
			}
		}

		playersToAct--
		idx = (idx + 1) % n
		if h.tbl.actable() < 1 {
			return nil
		}
	}
}
