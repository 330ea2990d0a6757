package domain

type Street string

const (
	StreetPreFlop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

// NextStreet returns the street after s, or false from the river.
func NextStreet(s Street) (Street, bool) {
	switch s {
	case StreetPreFlop:
		return StreetFlop, true
	case StreetFlop:
		return StreetTurn, true
	case StreetTurn:
		return StreetRiver, true
	default:
		return "", false
	}
}

// BoardCardsFor returns how many community cards are dealt entering the
// street: 3 for the flop, 1 each for turn and river.
func BoardCardsFor(s Street) int {
	if s == StreetFlop {
		return 3
	}
	if s == StreetTurn || s == StreetRiver {
		return 1
	}
	return 0
}

// GamePhase is the top-level hand lifecycle state.
type GamePhase string

const (
	PhasePreGame        GamePhase = "pre_game"
	PhasePostingBlinds  GamePhase = "posting_blinds"
	PhaseDealing        GamePhase = "dealing"
	PhasePreFlop        GamePhase = "preflop"
	PhaseFlop           GamePhase = "flop"
	PhaseTurn           GamePhase = "turn"
	PhaseRiver          GamePhase = "river"
	PhaseShowdown       GamePhase = "showdown"
	PhasePayoutAndReset GamePhase = "payout_and_reset"
	PhaseGameOver       GamePhase = "game_over"
)

// PhaseFor maps a street to its betting phase.
func PhaseFor(s Street) GamePhase {
	switch s {
	case StreetPreFlop:
		return PhasePreFlop
	case StreetFlop:
		return PhaseFlop
	case StreetTurn:
		return PhaseTurn
	default:
		return PhaseRiver
	}
}
