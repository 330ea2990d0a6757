package game

import "github.com/tablefelt/holdem-engine/internal/domain"

// PlayerPublic is the redacted, opponent-safe view of a seat. Hole cards
// are withheld until showdown; the history recorder carries revealed
// hands after the fact.
type PlayerPublic struct {
	ID         int                 `json:"id"`
	Name       string              `json:"name"`
	Stack      uint32              `json:"stack"`
	CurrentBet uint32              `json:"current_bet"`
	Status     domain.PlayerStatus `json:"status"`
	IsHuman    bool                `json:"is_human"`
}

// TableView is everything a seat may see when asked to act: the public
// table state plus that seat's own hole cards.
type TableView struct {
	HandID        string
	HandNo        uint64
	Phase         domain.GamePhase
	Street        domain.Street
	Board         []domain.Card
	PotTotal      uint32
	CurrentBet    uint32
	MinRaiseTo    uint32
	ToCall        uint32
	BigBlind      uint32
	ActingPlayer  int
	HoleCards     []domain.Card
	Stack         uint32
	PlayerBet     uint32
	PlayersInHand int
	Position      int
	Players       []PlayerPublic
}

// View builds the redacted view for one seat. Any viewer id works; only
// the viewer's own hole cards are included.
func (c *Controller) View(viewerID int) TableView {
	view := TableView{
		HandID:   c.handID,
		HandNo:   c.handNo,
		Phase:    c.phase,
		Street:   c.street,
		Board:    append([]domain.Card(nil), c.board...),
		PotTotal: c.pots.Total(),
		BigBlind: c.cfg.BigBlind,
	}

	if c.round != nil {
		view.CurrentBet = c.round.CurrentBet
		view.MinRaiseTo = c.round.CurrentBet + c.round.MinRaise
	}

	inHand := 0
	for _, p := range c.players {
		if p.InHand() {
			inHand++
		}
		view.Players = append(view.Players, PlayerPublic{
			ID:         p.ID,
			Name:       p.Name,
			Stack:      p.Stack,
			CurrentBet: p.CurrentBet,
			Status:     p.Status,
			IsHuman:    p.IsHuman,
		})
	}
	view.PlayersInHand = inHand

	if viewerID >= 0 && viewerID < len(c.players) {
		viewer := c.players[viewerID]
		view.ActingPlayer = viewerID
		view.HoleCards = append([]domain.Card(nil), viewer.HoleCards...)
		view.Stack = viewer.Stack
		view.PlayerBet = viewer.CurrentBet
		if view.CurrentBet > viewer.CurrentBet {
			view.ToCall = view.CurrentBet - viewer.CurrentBet
		}
		for i, id := range c.order {
			if id == viewerID {
				view.Position = i
				break
			}
		}
	}

	return view
}

// ActionOrder returns the acting sequence for the current street.
func (c *Controller) ActionOrder() []int {
	return append([]int(nil), c.order...)
}
