package rules

import (
	"fmt"

	"github.com/tablefelt/holdem-engine/internal/domain"
)

// AdvanceDealer moves the button clockwise to the next player still in the
// game, wrapping around the table.
func AdvanceDealer(players []domain.Player, dealer int) (int, error) {
	next, ok := nextSeat(players, dealer, inRotation)
	if !ok {
		return dealer, fmt.Errorf("%w: cannot advance dealer", domain.ErrNoActivePlayers)
	}
	return next, nil
}

// BlindSeats returns the small and big blind positions for the hand.
// Heads-up the button posts the small blind.
func BlindSeats(players []domain.Player, dealer int) (int, int, error) {
	if countInRotation(players) < 2 {
		return 0, 0, fmt.Errorf("%w: need two players for blinds", domain.ErrNoActivePlayers)
	}

	if countInRotation(players) == 2 {
		sb := dealer
		if !inRotation(players[dealer]) {
			next, ok := nextSeat(players, dealer, inRotation)
			if !ok {
				return 0, 0, domain.ErrNoActivePlayers
			}
			sb = next
		}
		bb, ok := nextSeat(players, sb, inRotation)
		if !ok {
			return 0, 0, domain.ErrNoActivePlayers
		}
		return sb, bb, nil
	}

	sb, ok := nextSeat(players, dealer, inRotation)
	if !ok {
		return 0, 0, domain.ErrNoActivePlayers
	}
	bb, ok := nextSeat(players, sb, inRotation)
	if !ok {
		return 0, 0, domain.ErrNoActivePlayers
	}
	return sb, bb, nil
}

// PostBlind debits up to amount from the player's stack. A short stack
// posts a partial all-in blind rather than failing. Returns the amount
// actually posted.
func PostBlind(p *domain.Player, amount uint32) uint32 {
	post := amount
	if p.Stack < amount {
		post = p.Stack
	}
	p.Stack -= post
	p.CurrentBet += post
	p.TotalContributed += post
	if p.Stack == 0 {
		p.Status = domain.StatusAllIn
	}
	return post
}

// ActionOrder computes the acting sequence for a street. Pre-flop starts
// left of the big blind; post-flop starts left of the button. All-in
// players stay in the order for display but are skipped when acting.
func ActionOrder(street domain.Street, dealer int, players []domain.Player) []int {
	start := dealer
	if street == domain.StreetPreFlop {
		sb, bb, err := BlindSeats(players, dealer)
		if err != nil {
			return nil
		}
		// Heads-up the small blind (the button) opens pre-flop.
		if countInRotation(players) == 2 {
			order := []int{}
			if players[sb].InHand() {
				order = append(order, sb)
			}
			if players[bb].InHand() {
				order = append(order, bb)
			}
			return order
		}
		start = bb
	}

	order := make([]int, 0, len(players))
	n := len(players)
	for i := 1; i <= n; i++ {
		idx := (start + i) % n
		if players[idx].InHand() {
			order = append(order, idx)
		}
	}
	return order
}

func nextSeat(players []domain.Player, from int, filter func(domain.Player) bool) (int, bool) {
	n := len(players)
	if n == 0 {
		return 0, false
	}
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if filter(players[idx]) {
			return idx, true
		}
	}
	return 0, false
}

func inRotation(p domain.Player) bool {
	return p.Status != domain.StatusEliminated && p.Status != domain.StatusSittingOut
}

func countInRotation(players []domain.Player) int {
	count := 0
	for _, p := range players {
		if inRotation(p) {
			count++
		}
	}
	return count
}
