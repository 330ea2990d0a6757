package domain

type PlayerStatus string

const (
	StatusActive     PlayerStatus = "active"
	StatusFolded     PlayerStatus = "folded"
	StatusAllIn      PlayerStatus = "all_in"
	StatusEliminated PlayerStatus = "eliminated"
	StatusSittingOut PlayerStatus = "sitting_out"
)

// AIProfile tunes the rule-based decision module. All traits are in [0, 1].
type AIProfile struct {
	Aggression        float64 `json:"aggression"`
	Tightness         float64 `json:"tightness"`
	BluffFrequency    float64 `json:"bluff_frequency"`
	PositionAwareness float64 `json:"position_awareness"`
}

// Player holds one seat's chip ledger and per-hand state. The ID doubles as
// the clockwise seat position; the controller owns the player list and is
// the only mutator outside of blind posting and pot payout.
type Player struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	Stack            uint32       `json:"stack"`
	HoleCards        []Card       `json:"hole_cards,omitempty"`
	CurrentBet       uint32       `json:"current_bet"`
	TotalContributed uint32       `json:"total_contributed"`
	Status           PlayerStatus `json:"status"`
	IsHuman          bool         `json:"is_human"`
	Profile          *AIProfile   `json:"ai_profile,omitempty"`
}

func NewPlayer(id int, name string, stack uint32) Player {
	return Player{
		ID:     id,
		Name:   name,
		Stack:  stack,
		Status: StatusActive,
	}
}

// InHand reports whether the player still contests the pot this hand.
func (p Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// CanAct reports whether the player may take a betting action.
func (p Player) CanAct() bool {
	return p.Status == StatusActive && p.Stack > 0
}

// ResetForHand clears per-hand state. Eliminated and sitting-out players
// keep their status; everyone else starts the hand active.
func (p *Player) ResetForHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalContributed = 0
	if p.Status != StatusEliminated && p.Status != StatusSittingOut {
		p.Status = StatusActive
	}
}
