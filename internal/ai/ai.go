// Package ai is the rule-based decision module for computer seats. It is a
// pure function over (public state, private hand, profile, rng): no search,
// no engine mutation, and always a legal action.
package ai

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tablefelt/holdem-engine/internal/domain"
	"github.com/tablefelt/holdem-engine/internal/rules"
)

// Strength buckets a hand for decision making.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
	VeryStrong
)

func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}

// BeginnerProfile plays tight and passive.
func BeginnerProfile() domain.AIProfile {
	return domain.AIProfile{
		Aggression:        0.2,
		Tightness:         0.7,
		BluffFrequency:    0.05,
		PositionAwareness: 0.1,
	}
}

// IntermediateProfile opens up: more aggression, more bluffs, and it
// weights late position.
func IntermediateProfile() domain.AIProfile {
	return domain.AIProfile{
		Aggression:        0.4,
		Tightness:         0.5,
		BluffFrequency:    0.15,
		PositionAwareness: 0.6,
	}
}

func ProfileFor(difficulty string) domain.AIProfile {
	if difficulty == "intermediate" {
		return IntermediateProfile()
	}
	return BeginnerProfile()
}

// View is the slice of game state a seat is allowed to see when deciding.
type View struct {
	HoleCards     []domain.Card
	Board         []domain.Card
	CurrentBet    uint32
	PlayerBet     uint32
	Stack         uint32
	MinRaiseTo    uint32
	PotTotal      uint32
	BigBlind      uint32
	PlayersInHand int
	// Position is the seat's index in the street's action order;
	// higher is later (closer to the button).
	Position int
}

// Decider holds the injectable randomness. A fixed seed makes every
// decision reproducible; seed zero draws from the clock.
type Decider struct {
	rng    *rand.Rand
	logger *log.Logger
}

func New(seed int64, logger *log.Logger) *Decider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Decider{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.WithPrefix("ai"),
	}
}

// Decide produces a legal action for the viewing seat. Raise targets are
// clamped to the min-raise and stack bounds, so the engine never rejects
// what this returns.
func (d *Decider) Decide(view View, profile domain.AIProfile) domain.Action {
	strength := d.evaluateStrength(view)
	toCall := uint32(0)
	if view.CurrentBet > view.PlayerBet {
		toCall = view.CurrentBet - view.PlayerBet
	}

	action := d.baseDecision(view, profile, strength, toCall)
	action = d.personalityAdjust(view, profile, strength, toCall, action)
	action = d.clampLegal(view, toCall, action)

	d.logger.Debug("decision",
		"strength", strength.String(),
		"to_call", toCall,
		"action", action.String(),
	)
	return action
}

func (d *Decider) evaluateStrength(view View) Strength {
	if len(view.Board) < 3 {
		return preflopStrength(view.HoleCards)
	}

	cards := append(append([]domain.Card(nil), view.HoleCards...), view.Board...)
	rank, err := rules.Evaluate(cards)
	if err != nil {
		return Weak
	}

	switch rank.Category {
	case rules.HandCategoryHighCard:
		return Weak
	case rules.HandCategoryOnePair:
		// Pair of jacks or better plays as medium.
		if len(rank.Tiebreak) > 0 && rank.Tiebreak[0] >= uint8(domain.RankJack) {
			return Medium
		}
		return Weak
	case rules.HandCategoryTwoPair:
		return Medium
	case rules.HandCategoryThreeOfAKind, rules.HandCategoryStraight, rules.HandCategoryFlush:
		return Strong
	default:
		return VeryStrong
	}
}

func preflopStrength(hole []domain.Card) Strength {
	if len(hole) != 2 {
		return Weak
	}
	high, low := uint8(hole[0].Rank), uint8(hole[1].Rank)
	if low > high {
		high, low = low, high
	}

	if high == low {
		switch {
		case high >= 10:
			return Strong
		case high >= 7:
			return Medium
		default:
			return Weak
		}
	}

	suited := hole[0].Suit == hole[1].Suit
	connected := high-low == 1

	if high >= uint8(domain.RankQueen) && low >= 10 {
		return Medium
	}
	if suited && connected && high >= 9 {
		return Medium
	}
	return Weak
}

func (d *Decider) baseDecision(view View, profile domain.AIProfile, strength Strength, toCall uint32) domain.Action {
	// Free option: check or bet for value.
	if toCall == 0 {
		if strength >= Strong {
			return domain.Action{Kind: domain.ActionRaise, Amount: view.MinRaiseTo}
		}
		return domain.Action{Kind: domain.ActionCheck}
	}

	if toCall >= view.Stack {
		// Only commit the whole stack with a real hand.
		if strength >= Strong {
			return domain.Action{Kind: domain.ActionAllIn}
		}
		return domain.Action{Kind: domain.ActionFold}
	}

	equity := estimateEquity(strength, view.PlayersInHand) * positionFactor(view, profile)
	odds := potOdds(view, toCall)

	switch strength {
	case VeryStrong:
		target := view.PlayerBet + toCall + view.PotTotal/2
		if target < view.MinRaiseTo {
			target = view.MinRaiseTo
		}
		return domain.Action{Kind: domain.ActionRaise, Amount: target}
	case Strong:
		if equity > odds*0.8 {
			if profile.Aggression > 0.4 && view.Position > view.PlayersInHand/2 {
				return domain.Action{Kind: domain.ActionRaise, Amount: view.MinRaiseTo}
			}
			return domain.Action{Kind: domain.ActionCall}
		}
		return domain.Action{Kind: domain.ActionFold}
	case Medium:
		threshold := 1.0 + profile.Tightness*0.5
		if equity > odds*threshold {
			return domain.Action{Kind: domain.ActionCall}
		}
		return domain.Action{Kind: domain.ActionFold}
	default:
		if toCall <= view.BigBlind/2 && equity > odds*1.5 {
			return domain.Action{Kind: domain.ActionCall}
		}
		return domain.Action{Kind: domain.ActionFold}
	}
}

// personalityAdjust injects the profile's variance: occasional raises
// instead of calls, loose calls instead of folds, and stone bluffs with
// weak hands when nobody has bet.
func (d *Decider) personalityAdjust(view View, profile domain.AIProfile, strength Strength, toCall uint32, action domain.Action) domain.Action {
	if d.rng.Float64() < 0.1 {
		switch action.Kind {
		case domain.ActionCall:
			if profile.Aggression > 0.5 && d.rng.Float64() < profile.Aggression {
				return domain.Action{Kind: domain.ActionRaise, Amount: view.MinRaiseTo}
			}
		case domain.ActionFold:
			if profile.Tightness < 0.3 && d.rng.Float64() < 1.0-profile.Tightness {
				return domain.Action{Kind: domain.ActionCall}
			}
		}
	}

	if strength == Weak && toCall == 0 && d.rng.Float64() < profile.BluffFrequency {
		return domain.Action{Kind: domain.ActionRaise, Amount: view.MinRaiseTo}
	}

	return action
}

// clampLegal maps the chosen action onto what the betting round will
// accept: raises snap to the min-raise floor, become shoves when the stack
// cannot cover them, and nothing ever folds a free option.
func (d *Decider) clampLegal(view View, toCall uint32, action domain.Action) domain.Action {
	switch action.Kind {
	case domain.ActionFold:
		if toCall == 0 {
			return domain.Action{Kind: domain.ActionCheck}
		}
		return action
	case domain.ActionCheck:
		if toCall != 0 {
			return domain.Action{Kind: domain.ActionFold}
		}
		return action
	case domain.ActionCall:
		if toCall == 0 {
			return domain.Action{Kind: domain.ActionCheck}
		}
		if toCall >= view.Stack {
			return domain.Action{Kind: domain.ActionAllIn}
		}
		return action
	case domain.ActionRaise:
		target := action.Amount
		if target < view.MinRaiseTo {
			target = view.MinRaiseTo
		}
		if target <= view.PlayerBet {
			target = view.MinRaiseTo
		}
		if target-view.PlayerBet >= view.Stack {
			return domain.Action{Kind: domain.ActionAllIn}
		}
		return domain.Action{Kind: domain.ActionRaise, Amount: target}
	default:
		return action
	}
}

func potOdds(view View, toCall uint32) float64 {
	potAfterCall := view.PotTotal + toCall
	if potAfterCall == 0 {
		return 0
	}
	return float64(toCall) / float64(potAfterCall)
}

func estimateEquity(strength Strength, playersInHand int) float64 {
	base := map[Strength]float64{
		Weak:       0.15,
		Medium:     0.35,
		Strong:     0.65,
		VeryStrong: 0.85,
	}[strength]

	switch {
	case playersInHand <= 2:
		return base
	case playersInHand == 3:
		return base * 0.9
	case playersInHand == 4:
		return base * 0.8
	default:
		return base * 0.7
	}
}

// positionFactor rewards late position, scaled by how much the profile
// cares about position at all.
func positionFactor(view View, profile domain.AIProfile) float64 {
	if view.PlayersInHand == 0 {
		return 1
	}
	raw := 0.9
	if view.Position > view.PlayersInHand/2 {
		raw = 1.2
	}
	return 1 + (raw-1)*profile.PositionAwareness
}
