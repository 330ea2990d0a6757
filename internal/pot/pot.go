// Package pot accumulates per-hand contributions into a main pot and
// all-in side pots, and distributes them at hand end.
package pot

import (
	"fmt"
	"sort"

	"github.com/tablefelt/holdem-engine/internal/domain"
	"github.com/tablefelt/holdem-engine/internal/rules"
)

// Pot is one layer of the hand's money: the main pot or a side pot capped
// at an all-in player's total contribution.
type Pot struct {
	Amount   uint32
	Eligible []int
}

// Engine is the hand-scoped contribution ledger. Every accepted bet is
// posted here immediately, so pot totals always agree with chip stacks.
type Engine struct {
	contributed map[int]uint32
	caps        map[int]uint32
}

func New() *Engine {
	return &Engine{
		contributed: make(map[int]uint32),
		caps:        make(map[int]uint32),
	}
}

func (e *Engine) Contribute(playerID int, amount uint32) {
	if amount == 0 {
		return
	}
	e.contributed[playerID] += amount
}

// MarkAllIn freezes the player's contribution as a pot boundary. Chips
// other players commit beyond this cap flow into a side pot the capped
// player is not eligible for.
func (e *Engine) MarkAllIn(playerID int) {
	e.caps[playerID] = e.contributed[playerID]
}

func (e *Engine) Total() uint32 {
	var total uint32
	for _, amount := range e.contributed {
		total += amount
	}
	return total
}

func (e *Engine) Contribution(playerID int) uint32 {
	return e.contributed[playerID]
}

// Pots lays out the main pot and side pots in creation order. Boundaries
// sit at each all-in player's capped contribution; partial contributions
// from folded players stay in the layer they funded (dead money).
func (e *Engine) Pots(players []domain.Player) []Pot {
	levels := e.levels()
	pots := make([]Pot, 0, len(levels))

	prev := uint32(0)
	for _, level := range levels {
		var amount uint32
		for _, contributed := range e.contributed {
			amount += clamp(contributed, prev, level)
		}
		if amount == 0 {
			prev = level
			continue
		}

		eligible := make([]int, 0, len(players))
		for _, p := range players {
			if p.InHand() && e.contributed[p.ID] >= level {
				eligible = append(eligible, p.ID)
			}
		}
		sort.Ints(eligible)
		pots = append(pots, Pot{Amount: amount, Eligible: eligible})
		prev = level
	}
	return pots
}

// Distribute pays each pot to its best-ranked eligible players, splitting
// ties evenly. Odd chips go to the first winner in oddChipOrder, the
// action order after the dealer; this is the standard odd-chip rule and a
// common source of off-by-one mistakes, so it is covered by tests.
// Credits stacks directly and returns the award breakdown.
func (e *Engine) Distribute(players []domain.Player, ranks map[int]rules.HandRank, oddChipOrder []int) ([]domain.PotAward, error) {
	pots := e.Pots(players)
	awards := make([]domain.PotAward, 0, len(pots))

	byID := make(map[int]*domain.Player, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
	}

	for i, p := range pots {
		winners := make([]int, 0, len(p.Eligible))
		var best rules.HandRank
		for _, id := range p.Eligible {
			rank, ok := ranks[id]
			if !ok {
				return nil, fmt.Errorf("missing hand rank for player %d", id)
			}
			if len(winners) == 0 || rules.Compare(rank, best) > 0 {
				best = rank
				winners = []int{id}
				continue
			}
			if rules.Compare(rank, best) == 0 {
				winners = append(winners, id)
			}
		}
		if len(winners) == 0 {
			return nil, fmt.Errorf("pot %d has no eligible winner", i)
		}

		share := p.Amount / uint32(len(winners))
		odd := p.Amount % uint32(len(winners))
		for _, id := range winners {
			byID[id].Stack += share
		}
		for _, id := range orderWinners(winners, oddChipOrder) {
			if odd == 0 {
				break
			}
			byID[id].Stack++
			odd--
		}

		reason := "main_pot"
		if i > 0 {
			reason = fmt.Sprintf("side_pot_%d", i)
		}
		awards = append(awards, domain.PotAward{
			Amount:  p.Amount,
			Players: append([]int(nil), winners...),
			Reason:  reason,
		})
	}

	return awards, nil
}

// Reset clears the ledger for the next hand.
func (e *Engine) Reset() {
	e.contributed = make(map[int]uint32)
	e.caps = make(map[int]uint32)
}

func (e *Engine) levels() []uint32 {
	seen := map[uint32]struct{}{}
	levels := make([]uint32, 0, len(e.caps)+1)
	for _, cap := range e.caps {
		if cap == 0 {
			continue
		}
		if _, ok := seen[cap]; ok {
			continue
		}
		seen[cap] = struct{}{}
		levels = append(levels, cap)
	}

	var max uint32
	for _, contributed := range e.contributed {
		if contributed > max {
			max = contributed
		}
	}
	if max > 0 {
		if _, ok := seen[max]; !ok {
			levels = append(levels, max)
		}
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

func orderWinners(winners []int, oddChipOrder []int) []int {
	if len(winners) <= 1 || len(oddChipOrder) == 0 {
		return winners
	}
	isWinner := make(map[int]bool, len(winners))
	for _, id := range winners {
		isWinner[id] = true
	}
	ordered := make([]int, 0, len(winners))
	for _, id := range oddChipOrder {
		if isWinner[id] {
			ordered = append(ordered, id)
		}
	}
	// Winners missing from the supplied order still get their chip.
	for _, id := range winners {
		found := false
		for _, o := range ordered {
			if o == id {
				found = true
				break
			}
		}
		if !found {
			ordered = append(ordered, id)
		}
	}
	return ordered
}

func clamp(value, low, high uint32) uint32 {
	if value <= low {
		return 0
	}
	if value > high {
		return high - low
	}
	return value - low
}
