// Package betting drives a single street of wagering to completion.
package betting

import (
	"fmt"

	"github.com/tablefelt/holdem-engine/internal/domain"
	"github.com/tablefelt/holdem-engine/internal/pot"
)

// Round is the state machine for one street. The controller owns the
// player list and the pot engine; the round borrows both, applies one
// action at a time, and posts every accepted wager to the pot engine
// immediately so pot totals never drift from chip stacks.
type Round struct {
	Street        domain.Street
	CurrentBet    uint32
	MinRaise      uint32
	LastAggressor int

	order []int
	toAct []int
	pots  *pot.Engine
}

// NewRound starts a street. order comes from the position manager and may
// include all-in players; they are skipped when acting. Pre-flop the
// current bet opens at the big blind (already posted by the controller).
func NewRound(street domain.Street, order []int, players []domain.Player, pots *pot.Engine, bigBlind uint32) *Round {
	r := &Round{
		Street:        street,
		MinRaise:      bigBlind,
		LastAggressor: -1,
		order:         append([]int(nil), order...),
		pots:          pots,
	}
	if street == domain.StreetPreFlop {
		r.CurrentBet = bigBlind
	}
	for _, id := range order {
		if players[id].CanAct() {
			r.toAct = append(r.toAct, id)
		}
	}
	return r
}

// NextToAct returns the player owed an action, pruning queue entries that
// folded or went all-in since they were enqueued.
func (r *Round) NextToAct(players []domain.Player) (int, bool) {
	for len(r.toAct) > 0 {
		id := r.toAct[0]
		if players[id].CanAct() {
			return id, true
		}
		r.toAct = r.toAct[1:]
	}
	return 0, false
}

// Complete reports whether the street is finished: nobody left to act, or
// the hand is down to one contender.
func (r *Round) Complete(players []domain.Player) bool {
	if countInHand(players) <= 1 {
		return true
	}
	_, ok := r.NextToAct(players)
	return !ok
}

// Submit validates and applies one action. On any error the round, the
// player, and the pot engine are unchanged.
func (r *Round) Submit(players []domain.Player, playerID int, action domain.Action) error {
	actor, ok := r.NextToAct(players)
	if !ok {
		return fmt.Errorf("%w: street %s betting is closed", domain.ErrIllegalAction, r.Street)
	}
	if actor != playerID {
		return fmt.Errorf("%w: waiting on player %d", domain.ErrNotPlayersTurn, actor)
	}

	p := &players[playerID]
	toCall := uint32(0)
	if r.CurrentBet > p.CurrentBet {
		toCall = r.CurrentBet - p.CurrentBet
	}

	switch action.Kind {
	case domain.ActionFold:
		p.Status = domain.StatusFolded
		r.toAct = r.toAct[1:]

	case domain.ActionCheck:
		if toCall != 0 {
			return fmt.Errorf("%w: cannot check facing a bet of %d", domain.ErrIllegalAction, toCall)
		}
		r.toAct = r.toAct[1:]

	case domain.ActionCall:
		if toCall == 0 {
			return fmt.Errorf("%w: nothing to call", domain.ErrIllegalAction)
		}
		pay := toCall
		if pay > p.Stack {
			pay = p.Stack
		}
		r.toAct = r.toAct[1:]
		r.commit(p, pay)

	case domain.ActionRaise:
		if err := r.validateRaise(*p, action.Amount); err != nil {
			return err
		}
		delta := action.Amount - p.CurrentBet
		fullRaise := action.Amount >= r.CurrentBet+r.MinRaise
		r.commit(p, delta)
		if fullRaise {
			r.MinRaise = action.Amount - r.CurrentBet
		}
		r.CurrentBet = action.Amount
		r.LastAggressor = playerID
		r.reopen(players, playerID)

	case domain.ActionAllIn:
		if p.Stack == 0 {
			return fmt.Errorf("%w: no chips behind", domain.ErrIllegalAction)
		}
		total := p.CurrentBet + p.Stack
		r.commit(p, p.Stack)
		if total > r.CurrentBet {
			if total >= r.CurrentBet+r.MinRaise {
				r.MinRaise = total - r.CurrentBet
			}
			r.CurrentBet = total
			r.LastAggressor = playerID
			r.reopen(players, playerID)
		} else {
			r.toAct = r.toAct[1:]
		}

	default:
		return fmt.Errorf("%w: unknown action %q", domain.ErrIllegalAction, action.Kind)
	}

	return nil
}

func (r *Round) validateRaise(p domain.Player, raiseTo uint32) error {
	if raiseTo <= r.CurrentBet {
		return fmt.Errorf("%w: raise to %d must exceed current bet %d", domain.ErrIllegalAction, raiseTo, r.CurrentBet)
	}
	if raiseTo <= p.CurrentBet {
		return fmt.Errorf("%w: raise to %d must exceed committed %d", domain.ErrIllegalAction, raiseTo, p.CurrentBet)
	}
	delta := raiseTo - p.CurrentBet
	if delta > p.Stack {
		return fmt.Errorf("%w: raise needs %d chips, stack is %d", domain.ErrInsufficientChips, delta, p.Stack)
	}
	// A raise below the minimum is legal only as an exact all-in shove.
	if raiseTo < r.CurrentBet+r.MinRaise && delta != p.Stack {
		return fmt.Errorf("%w: raise to %d is below minimum %d", domain.ErrIllegalAction, raiseTo, r.CurrentBet+r.MinRaise)
	}
	return nil
}

// commit moves chips from the player into the pot ledger and flips the
// player all-in when the stack empties.
func (r *Round) commit(p *domain.Player, amount uint32) {
	p.Stack -= amount
	p.CurrentBet += amount
	p.TotalContributed += amount
	r.pots.Contribute(p.ID, amount)
	if p.Stack == 0 {
		p.Status = domain.StatusAllIn
		r.pots.MarkAllIn(p.ID)
	}
}

// reopen rebuilds the queue after aggression: every other player who can
// still act owes a response, in street order starting after the aggressor.
func (r *Round) reopen(players []domain.Player, aggressor int) {
	at := 0
	for i, id := range r.order {
		if id == aggressor {
			at = i
			break
		}
	}
	r.toAct = r.toAct[:0]
	for i := 1; i <= len(r.order); i++ {
		id := r.order[(at+i)%len(r.order)]
		if id != aggressor && players[id].CanAct() {
			r.toAct = append(r.toAct, id)
		}
	}
}

func countInHand(players []domain.Player) int {
	count := 0
	for _, p := range players {
		if p.InHand() {
			count++
		}
	}
	return count
}
