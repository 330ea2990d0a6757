package domain

// PotAward records one pot (main or side) paid out at hand end.
type PotAward struct {
	Amount  uint32 `json:"amount"`
	Players []int  `json:"players"`
	Reason  string `json:"reason"`
}

type EventKind string

const (
	EventPhaseChanged     EventKind = "phase_changed"
	EventActionApplied    EventKind = "action_applied"
	EventActionRejected   EventKind = "action_rejected"
	EventHandComplete     EventKind = "hand_complete"
	EventHandAborted      EventKind = "hand_aborted"
	EventPlayerEliminated EventKind = "player_eliminated"
	EventGameOver         EventKind = "game_over"
)

// Event is appended to the controller's queue after each state transition.
// The engine never calls into presentation code; collaborators drain the
// queue and react asynchronously.
type Event struct {
	Kind     EventKind  `json:"kind"`
	HandID   string     `json:"hand_id,omitempty"`
	HandNo   uint64     `json:"hand_no,omitempty"`
	Phase    GamePhase  `json:"phase,omitempty"`
	PlayerID int        `json:"player_id,omitempty"`
	Action   *Action    `json:"action,omitempty"`
	Awards   []PotAward `json:"awards,omitempty"`
	Reason   string     `json:"reason,omitempty"`
}
