// Package game owns the hand lifecycle: blinds, dealing, the four betting
// streets, showdown, payout, and elimination. All game state lives on one
// Controller instance and is mutated only through its entry points.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tablefelt/holdem-engine/internal/betting"
	"github.com/tablefelt/holdem-engine/internal/config"
	"github.com/tablefelt/holdem-engine/internal/domain"
	"github.com/tablefelt/holdem-engine/internal/history"
	"github.com/tablefelt/holdem-engine/internal/pot"
	"github.com/tablefelt/holdem-engine/internal/rules"
)

type Controller struct {
	cfg      config.Config
	logger   *log.Logger
	shuffler rules.Shuffler
	recorder *history.Recorder

	players []domain.Player
	dealer  int
	phase   domain.GamePhase
	street  domain.Street
	deck    domain.Deck
	board   []domain.Card
	order   []int
	round   *betting.Round
	pots    *pot.Engine

	handID      string
	handNo      uint64
	handStarted time.Time
	chipSupply  uint32

	events []domain.Event
}

type Option func(*Controller)

func WithShuffler(s rules.Shuffler) Option {
	return func(c *Controller) { c.shuffler = s }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l.WithPrefix("controller") }
}

func WithRecorder(r *history.Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

func NewController(cfg config.Config, players []domain.Player, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(players) != cfg.NumPlayers {
		return nil, fmt.Errorf("expected %d players, got %d", cfg.NumPlayers, len(players))
	}
	for i, p := range players {
		if p.ID != i {
			return nil, fmt.Errorf("player %d seated out of order (id %d)", i, p.ID)
		}
	}

	c := &Controller{
		cfg:      cfg,
		logger:   log.Default().WithPrefix("controller"),
		recorder: history.NewRecorder(),
		players:  append([]domain.Player(nil), players...),
		dealer:   0,
		phase:    domain.PhasePreGame,
		pots:     pot.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.shuffler == nil {
		if cfg.Seed != 0 {
			c.shuffler = rules.NewSeededShuffler(cfg.Seed)
		} else {
			c.shuffler = rules.NewCryptoShuffler()
		}
	}
	for _, p := range c.players {
		c.chipSupply += p.Stack
	}
	return c, nil
}

func (c *Controller) Phase() domain.GamePhase { return c.phase }

func (c *Controller) Street() domain.Street { return c.street }

func (c *Controller) Dealer() int { return c.dealer }

func (c *Controller) HandNo() uint64 { return c.handNo }

func (c *Controller) Board() []domain.Card {
	return append([]domain.Card(nil), c.board...)
}

func (c *Controller) PotTotal() uint32 { return c.pots.Total() }

func (c *Controller) CurrentBet() uint32 {
	if c.round == nil {
		return 0
	}
	return c.round.CurrentBet
}

func (c *Controller) MinRaiseTo() uint32 {
	if c.round == nil {
		return 0
	}
	return c.round.CurrentBet + c.round.MinRaise
}

func (c *Controller) Players() []domain.Player {
	return append([]domain.Player(nil), c.players...)
}

// CurrentActor returns the seat owed an action, if a street is open.
func (c *Controller) CurrentActor() (int, bool) {
	if c.round == nil || !c.betting() {
		return 0, false
	}
	return c.round.NextToAct(c.players)
}

// Events drains the pending event queue. Consumers (audio, animation,
// teaching) read these asynchronously; the engine never waits on them.
func (c *Controller) Events() []domain.Event {
	out := c.events
	c.events = nil
	return out
}

// LastHandResult exposes the most recent hand record.
func (c *Controller) LastHandResult() (history.HandRecord, bool) {
	return c.recorder.LastHand()
}

func (c *Controller) Recorder() *history.Recorder { return c.recorder }

// StartHand runs PostingBlinds and Dealing, leaving the hand in pre-flop
// betting (or already resolved when the blinds leave one contender).
func (c *Controller) StartHand() error {
	if c.phase == domain.PhaseGameOver {
		return domain.ErrGameOver
	}
	if c.phase != domain.PhasePreGame {
		return fmt.Errorf("%w: cannot start hand during %s", domain.ErrIllegalAction, c.phase)
	}
	if c.countFunded() < 2 {
		c.setPhase(domain.PhaseGameOver)
		c.emit(domain.Event{Kind: domain.EventGameOver})
		return domain.ErrGameOver
	}

	for i := range c.players {
		c.players[i].ResetForHand()
	}
	c.pots.Reset()
	c.board = nil
	c.round = nil
	c.deck = domain.NewDeck()
	if err := c.shuffler.Shuffle(c.deck.Cards); err != nil {
		return fmt.Errorf("shuffle: %w", err)
	}

	c.handID = uuid.NewString()
	c.handNo++
	c.handStarted = time.Now()

	c.setPhase(domain.PhasePostingBlinds)
	sb, bb, err := rules.BlindSeats(c.players, c.dealer)
	if err != nil {
		return err
	}
	postedSB := rules.PostBlind(&c.players[sb], c.cfg.SmallBlind)
	postedBB := rules.PostBlind(&c.players[bb], c.cfg.BigBlind)
	c.pots.Contribute(sb, postedSB)
	c.pots.Contribute(bb, postedBB)
	if c.players[sb].Status == domain.StatusAllIn {
		c.pots.MarkAllIn(sb)
	}
	if c.players[bb].Status == domain.StatusAllIn {
		c.pots.MarkAllIn(bb)
	}
	c.logger.Debug("blinds posted", "hand", c.handNo, "sb_seat", sb, "bb_seat", bb, "pot", c.pots.Total())

	c.setPhase(domain.PhaseDealing)
	if err := c.dealHoleCards(); err != nil {
		return c.abortHand(err)
	}

	if err := c.recorder.BeginHand(history.HandRecord{
		HandID:    c.handID,
		HandNo:    c.handNo,
		StartedAt: c.handStarted,
	}); err != nil {
		return fmt.Errorf("record hand start: %w", err)
	}

	c.street = domain.StreetPreFlop
	c.openStreet()

	if c.countInHand() <= 1 {
		return c.finishUncontested()
	}
	if c.round.Complete(c.players) {
		return c.runOutBoard()
	}
	return nil
}

// SubmitAction is the single mutating entry point for betting decisions,
// human and AI alike. Illegal actions are rejected same-tick with the
// engine state unchanged.
func (c *Controller) SubmitAction(playerID int, action domain.Action) error {
	if !c.betting() || c.round == nil {
		return fmt.Errorf("%w: no betting in progress", domain.ErrHandComplete)
	}
	if playerID < 0 || playerID >= len(c.players) {
		return fmt.Errorf("%w: unknown player %d", domain.ErrIllegalAction, playerID)
	}

	if err := c.round.Submit(c.players, playerID, action); err != nil {
		c.emit(domain.Event{
			Kind:     domain.EventActionRejected,
			HandID:   c.handID,
			HandNo:   c.handNo,
			PlayerID: playerID,
			Action:   &action,
			Reason:   err.Error(),
		})
		return err
	}

	c.emit(domain.Event{
		Kind:     domain.EventActionApplied,
		HandID:   c.handID,
		HandNo:   c.handNo,
		PlayerID: playerID,
		Action:   &action,
	})
	if err := c.recorder.RecordAction(history.ActionRecord{
		HandID:   c.handID,
		Street:   c.street,
		PlayerID: playerID,
		Kind:     action.Kind,
		Amount:   action.Amount,
		At:       time.Now(),
	}); err != nil {
		c.logger.Warn("record action", "err", err)
	}

	if c.countInHand() <= 1 {
		return c.finishUncontested()
	}
	if c.round.Complete(c.players) {
		return c.advanceStreet()
	}
	return nil
}

func (c *Controller) dealHoleCards() error {
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= len(c.players); i++ {
			idx := (c.dealer + i) % len(c.players)
			if !c.players[idx].InHand() {
				continue
			}
			card, err := c.deck.DealOne()
			if err != nil {
				return err
			}
			c.players[idx].HoleCards = append(c.players[idx].HoleCards, card)
		}
	}
	return nil
}

func (c *Controller) dealBoard(street domain.Street) error {
	// Burn one before every community stage.
	if _, err := c.deck.DealOne(); err != nil {
		return err
	}
	for i := 0; i < domain.BoardCardsFor(street); i++ {
		card, err := c.deck.DealOne()
		if err != nil {
			return err
		}
		c.board = append(c.board, card)
	}
	return nil
}

func (c *Controller) openStreet() {
	c.order = rules.ActionOrder(c.street, c.dealer, c.players)
	for i := range c.players {
		if c.street != domain.StreetPreFlop {
			c.players[i].CurrentBet = 0
		}
	}
	c.round = betting.NewRound(c.street, c.order, c.players, c.pots, c.cfg.BigBlind)
	c.setPhase(domain.PhaseFor(c.street))
}

func (c *Controller) advanceStreet() error {
	next, ok := domain.NextStreet(c.street)
	if !ok {
		return c.showdown()
	}
	if err := c.dealBoard(next); err != nil {
		return c.abortHand(err)
	}
	c.street = next
	c.openStreet()

	if c.round.Complete(c.players) {
		return c.advanceStreet()
	}
	return nil
}

// runOutBoard deals the remaining streets when everyone is all-in.
func (c *Controller) runOutBoard() error {
	return c.advanceStreet()
}

func (c *Controller) finishUncontested() error {
	if c.cfg.RevealBoardOnUncontested {
		for len(c.board) < 5 {
			street, ok := domain.NextStreet(c.street)
			if !ok {
				break
			}
			if err := c.dealBoard(street); err != nil {
				return c.abortHand(err)
			}
			c.street = street
		}
	}

	winner := -1
	for _, p := range c.players {
		if p.InHand() {
			winner = p.ID
			break
		}
	}
	if winner < 0 {
		return c.abortHand(domain.ErrNoActivePlayers)
	}

	amount := c.pots.Total()
	c.players[winner].Stack += amount
	awards := []domain.PotAward{{Amount: amount, Players: []int{winner}, Reason: "uncontested"}}
	return c.finishHand(awards, nil)
}

func (c *Controller) showdown() error {
	c.setPhase(domain.PhaseShowdown)

	ranks := make(map[int]rules.HandRank)
	for _, p := range c.players {
		if !p.InHand() {
			continue
		}
		cards := append(append([]domain.Card(nil), p.HoleCards...), c.board...)
		rank, err := rules.Evaluate(cards)
		if err != nil {
			return c.abortHand(err)
		}
		ranks[p.ID] = rank
	}

	oddOrder := rules.ActionOrder(domain.StreetRiver, c.dealer, c.players)
	awards, err := c.pots.Distribute(c.players, ranks, oddOrder)
	if err != nil {
		return c.abortHand(err)
	}
	return c.finishHand(awards, ranks)
}

func (c *Controller) finishHand(awards []domain.PotAward, ranks map[int]rules.HandRank) error {
	c.setPhase(domain.PhasePayoutAndReset)

	var stacks uint32
	for _, p := range c.players {
		stacks += p.Stack
	}
	if stacks != c.chipSupply {
		return fmt.Errorf("chip conservation violated: supply %d, stacks %d after payout", c.chipSupply, stacks)
	}

	record := history.HandRecord{
		HandID:      c.handID,
		HandNo:      c.handNo,
		StartedAt:   c.handStarted,
		FinalPhase:  c.phase,
		Board:       append([]domain.Card(nil), c.board...),
		Awards:      awards,
		FinalStacks: make(map[int]uint32, len(c.players)),
	}
	ended := time.Now()
	record.EndedAt = &ended
	if ranks != nil {
		record.RevealedHands = make(map[int][]domain.Card, len(ranks))
		record.BestHandLabel = make(map[int]string, len(ranks))
		for id, rank := range ranks {
			record.RevealedHands[id] = append([]domain.Card(nil), c.players[id].HoleCards...)
			record.BestHandLabel[id] = rules.CategoryLabel(rank.Category)
		}
	}
	for _, p := range c.players {
		record.FinalStacks[p.ID] = p.Stack
	}
	if err := c.recorder.CompleteHand(c.handID, record); err != nil {
		c.logger.Warn("record hand completion", "err", err)
	}

	c.emit(domain.Event{
		Kind:   domain.EventHandComplete,
		HandID: c.handID,
		HandNo: c.handNo,
		Awards: awards,
	})

	for i := range c.players {
		p := &c.players[i]
		if p.Stack == 0 && p.Status != domain.StatusSittingOut && p.Status != domain.StatusEliminated {
			p.Status = domain.StatusEliminated
			c.emit(domain.Event{Kind: domain.EventPlayerEliminated, HandID: c.handID, HandNo: c.handNo, PlayerID: p.ID})
			c.logger.Info("player eliminated", "player", p.ID, "hand", c.handNo)
		}
	}

	c.round = nil
	c.pots.Reset()

	if c.countFunded() <= 1 {
		c.setPhase(domain.PhaseGameOver)
		c.emit(domain.Event{Kind: domain.EventGameOver, HandID: c.handID, HandNo: c.handNo})
		return nil
	}

	dealer, err := rules.AdvanceDealer(c.players, c.dealer)
	if err != nil {
		return err
	}
	c.dealer = dealer
	c.setPhase(domain.PhasePreGame)
	return nil
}

// abortHand is the fatal-error path: the hand is cancelled, every seat's
// contribution comes back, and the error surfaces to the caller. Stacks
// end exactly where the hand started.
func (c *Controller) abortHand(cause error) error {
	for i := range c.players {
		p := &c.players[i]
		p.Stack += p.TotalContributed
		p.TotalContributed = 0
		p.CurrentBet = 0
		if p.Status == domain.StatusFolded || p.Status == domain.StatusAllIn {
			p.Status = domain.StatusActive
		}
	}
	c.pots.Reset()
	c.round = nil

	ended := time.Now()
	record := history.HandRecord{
		HandID:      c.handID,
		HandNo:      c.handNo,
		StartedAt:   c.handStarted,
		EndedAt:     &ended,
		FinalPhase:  c.phase,
		Aborted:     true,
		AbortReason: cause.Error(),
	}
	if err := c.recorder.CompleteHand(c.handID, record); err != nil && !errors.Is(err, history.ErrHandNotFound) {
		c.logger.Warn("record hand abort", "err", err)
	}

	c.emit(domain.Event{
		Kind:   domain.EventHandAborted,
		HandID: c.handID,
		HandNo: c.handNo,
		Reason: cause.Error(),
	})
	c.logger.Error("hand aborted", "hand", c.handNo, "err", cause)

	c.setPhase(domain.PhasePreGame)
	return fmt.Errorf("hand %d aborted: %w", c.handNo, cause)
}

func (c *Controller) setPhase(phase domain.GamePhase) {
	c.phase = phase
	c.emit(domain.Event{
		Kind:   domain.EventPhaseChanged,
		HandID: c.handID,
		HandNo: c.handNo,
		Phase:  phase,
	})
}

func (c *Controller) emit(event domain.Event) {
	c.events = append(c.events, event)
}

func (c *Controller) betting() bool {
	switch c.phase {
	case domain.PhasePreFlop, domain.PhaseFlop, domain.PhaseTurn, domain.PhaseRiver:
		return true
	default:
		return false
	}
}

func (c *Controller) countInHand() int {
	count := 0
	for _, p := range c.players {
		if p.InHand() {
			count++
		}
	}
	return count
}

func (c *Controller) countFunded() int {
	count := 0
	for _, p := range c.players {
		if p.Status != domain.StatusEliminated && p.Status != domain.StatusSittingOut && p.Stack > 0 {
			count++
		}
	}
	return count
}
