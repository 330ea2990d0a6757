package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablefelt/holdem-engine/internal/config"
	"github.com/tablefelt/holdem-engine/internal/domain"
)

func testConfig(numPlayers int) config.Config {
	cfg := config.Default()
	cfg.NumPlayers = numPlayers
	cfg.Seed = 1
	return cfg
}

func testPlayers(cfg config.Config) []domain.Player {
	players := make([]domain.Player, 0, cfg.NumPlayers)
	for i := 0; i < cfg.NumPlayers; i++ {
		players = append(players, domain.NewPlayer(i, "", cfg.StartingStack))
	}
	return players
}

func newTestController(t *testing.T, numPlayers int) *Controller {
	t.Helper()
	cfg := testConfig(numPlayers)
	controller, err := NewController(cfg, testPlayers(cfg))
	require.NoError(t, err)
	return controller
}

func stackSum(c *Controller) uint32 {
	var sum uint32
	for _, p := range c.Players() {
		sum += p.Stack
	}
	return sum
}

// playHandToCompletion calls and checks every decision until the hand ends.
func playHandToCompletion(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 200; i++ {
		seat, ok := c.CurrentActor()
		if !ok {
			return
		}
		view := c.View(seat)
		action := domain.Action{Kind: domain.ActionCheck}
		if view.ToCall > 0 {
			action = domain.Action{Kind: domain.ActionCall}
		}
		require.NoError(t, c.SubmitAction(seat, action))
	}
	t.Fatal("hand did not complete")
}

func TestNewController_RejectsBadSeating(t *testing.T) {
	t.Parallel()

	cfg := testConfig(3)
	players := testPlayers(cfg)
	players[2].ID = 5
	_, err := NewController(cfg, players)
	require.Error(t, err)

	_, err = NewController(cfg, players[:2])
	require.Error(t, err)
}

func TestStartHand_PostsBlindsAndDeals(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 4)
	require.NoError(t, c.StartHand())

	assert.Equal(t, domain.PhasePreFlop, c.Phase())
	assert.Equal(t, uint32(30), c.PotTotal(), "small plus big blind")
	assert.Equal(t, uint32(20), c.CurrentBet())

	for _, p := range c.Players() {
		assert.Len(t, p.HoleCards, 2, "seat %d", p.ID)
	}
	assert.Empty(t, c.Board())

	// UTG acts first with blinds at seats 1 and 2.
	seat, ok := c.CurrentActor()
	require.True(t, ok)
	assert.Equal(t, 3, seat)
}

func TestStartHand_RejectsMidHand(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	require.NoError(t, c.StartHand())
	require.Error(t, c.StartHand())
}

func TestFullHand_CallDownToShowdown(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 4)
	supply := stackSum(c)

	require.NoError(t, c.StartHand())
	playHandToCompletion(t, c)

	assert.Equal(t, domain.PhasePreGame, c.Phase())
	assert.Equal(t, supply, stackSum(c), "every chip accounted for")
	assert.Equal(t, 1, c.Dealer(), "button advances after the hand")

	record, ok := c.LastHandResult()
	require.True(t, ok)
	assert.False(t, record.Aborted)
	assert.Len(t, record.Board, 5)
	assert.NotEmpty(t, record.Awards)
	assert.NotEmpty(t, record.RevealedHands)

	var awarded uint32
	for _, award := range record.Awards {
		awarded += award.Amount
	}
	assert.Equal(t, uint32(80), awarded, "four callers of the big blind")
}

func TestFullHand_ChipConservationOverManyHands(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 4)
	supply := stackSum(c)

	for hand := 0; hand < 20 && c.Phase() != domain.PhaseGameOver; hand++ {
		require.NoError(t, c.StartHand())
		playHandToCompletion(t, c)
		assert.Equal(t, supply, stackSum(c), "hand %d", hand)
	}
}

func TestUncontestedPot_SkipsBoard(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	require.NoError(t, c.StartHand())

	// Everyone folds to the big blind.
	for {
		seat, ok := c.CurrentActor()
		if !ok {
			break
		}
		view := c.View(seat)
		if view.ToCall == 0 {
			break
		}
		require.NoError(t, c.SubmitAction(seat, domain.Action{Kind: domain.ActionFold}))
	}

	assert.Equal(t, domain.PhasePreGame, c.Phase())
	record, ok := c.LastHandResult()
	require.True(t, ok)
	assert.Empty(t, record.Board, "no community cards on an uncontested pot")
	require.Len(t, record.Awards, 1)
	assert.Equal(t, "uncontested", record.Awards[0].Reason)
	assert.Equal(t, uint32(30), record.Awards[0].Amount)
	assert.Empty(t, record.RevealedHands, "nobody shows an uncontested win")
}

func TestUncontestedPot_RevealBoardWhenConfigured(t *testing.T) {
	t.Parallel()

	cfg := testConfig(3)
	cfg.RevealBoardOnUncontested = true
	c, err := NewController(cfg, testPlayers(cfg))
	require.NoError(t, err)

	require.NoError(t, c.StartHand())
	for {
		seat, ok := c.CurrentActor()
		if !ok {
			break
		}
		view := c.View(seat)
		if view.ToCall == 0 {
			break
		}
		require.NoError(t, c.SubmitAction(seat, domain.Action{Kind: domain.ActionFold}))
	}

	record, ok := c.LastHandResult()
	require.True(t, ok)
	assert.Len(t, record.Board, 5, "full runout when reveal is on")
}

func TestAllInRunout_DealsRemainingStreets(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 2)
	supply := stackSum(c)
	require.NoError(t, c.StartHand())

	seat, ok := c.CurrentActor()
	require.True(t, ok)
	require.NoError(t, c.SubmitAction(seat, domain.Action{Kind: domain.ActionAllIn}))

	seat, ok = c.CurrentActor()
	require.True(t, ok)
	require.NoError(t, c.SubmitAction(seat, domain.Action{Kind: domain.ActionCall}))

	record, rec := c.LastHandResult()
	require.True(t, rec)
	assert.Len(t, record.Board, 5, "board runs out when everyone is all-in")
	assert.Equal(t, supply, stackSum(c))

	// One player holds every chip now, or the pot split evenly.
	players := c.Players()
	if players[0].Stack == 0 || players[1].Stack == 0 {
		assert.Equal(t, domain.PhaseGameOver, c.Phase())
		for _, p := range players {
			if p.Stack == 0 {
				assert.Equal(t, domain.StatusEliminated, p.Status)
			}
		}
	} else {
		assert.Equal(t, domain.PhasePreGame, c.Phase())
	}
}

func TestSubmitAction_RejectionsLeaveStateIntact(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 4)
	require.NoError(t, c.StartHand())
	potBefore := c.PotTotal()

	seat, ok := c.CurrentActor()
	require.True(t, ok)

	// Wrong seat.
	wrong := (seat + 1) % 4
	err := c.SubmitAction(wrong, domain.Action{Kind: domain.ActionFold})
	require.ErrorIs(t, err, domain.ErrNotPlayersTurn)

	// Illegal check facing the blind.
	err = c.SubmitAction(seat, domain.Action{Kind: domain.ActionCheck})
	require.ErrorIs(t, err, domain.ErrIllegalAction)

	assert.Equal(t, potBefore, c.PotTotal())
	actor, ok := c.CurrentActor()
	require.True(t, ok)
	assert.Equal(t, seat, actor)

	events := c.Events()
	rejected := 0
	for _, e := range events {
		if e.Kind == domain.EventActionRejected {
			rejected++
		}
	}
	assert.Equal(t, 2, rejected)
}

func TestDeckExhaustion_AbortsAndRefunds(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 4)
	supply := stackSum(c)
	require.NoError(t, c.StartHand())

	// Force the next board deal to fail.
	c.deck.Next = len(c.deck.Cards)

	var abortErr error
	for i := 0; i < 20; i++ {
		seat, ok := c.CurrentActor()
		require.True(t, ok, "hand should still be waiting on actions")
		view := c.View(seat)
		action := domain.Action{Kind: domain.ActionCheck}
		if view.ToCall > 0 {
			action = domain.Action{Kind: domain.ActionCall}
		}
		if err := c.SubmitAction(seat, action); err != nil {
			abortErr = err
			break
		}
	}

	require.ErrorIs(t, abortErr, domain.ErrDeckExhausted)
	assert.Equal(t, domain.PhasePreGame, c.Phase())
	assert.Equal(t, supply, stackSum(c), "aborted hand refunds every contribution")
	for _, p := range c.Players() {
		assert.Equal(t, uint32(0), p.TotalContributed)
		assert.Equal(t, domain.StatusActive, p.Status)
	}

	record, ok := c.LastHandResult()
	require.True(t, ok)
	assert.True(t, record.Aborted)
}

func TestEvents_DrainedAfterRead(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	require.NoError(t, c.StartHand())

	events := c.Events()
	assert.NotEmpty(t, events)
	assert.Equal(t, domain.EventPhaseChanged, events[0].Kind)
	assert.Empty(t, c.Events(), "queue drains on read")
}

func TestView_RedactsOpponentHoleCards(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	require.NoError(t, c.StartHand())

	view := c.View(0)
	assert.Len(t, view.HoleCards, 2)
	assert.Equal(t, uint32(20), view.CurrentBet)
	assert.Equal(t, 3, view.PlayersInHand)
	require.Len(t, view.Players, 3)
	for _, seat := range view.Players {
		assert.Positive(t, seat.Stack)
	}

	// The public seat list never carries hole cards; only the viewer's own
	// cards appear, on the view itself.
	other := c.View(1)
	assert.Len(t, other.HoleCards, 2)
	assert.NotEqual(t, view.HoleCards, other.HoleCards)
}
