package domain

import "fmt"

type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "all_in"
)

// Action is one betting decision. Raise amounts are raise-to totals for the
// street, not increments.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Amount uint32     `json:"amount,omitempty"`
}

func NewAction(kind ActionKind, amount uint32) (Action, error) {
	switch kind {
	case ActionRaise:
		if amount == 0 {
			return Action{}, fmt.Errorf("action amount is required for %s", kind)
		}
	case ActionFold, ActionCheck, ActionCall, ActionAllIn:
		if amount != 0 {
			return Action{}, fmt.Errorf("action amount is not allowed for %s", kind)
		}
	default:
		return Action{}, fmt.Errorf("unknown action kind %q", kind)
	}
	return Action{Kind: kind, Amount: amount}, nil
}

func (a Action) String() string {
	if a.Kind == ActionRaise {
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	}
	return string(a.Kind)
}
