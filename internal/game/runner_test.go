package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablefelt/holdem-engine/internal/ai"
	"github.com/tablefelt/holdem-engine/internal/domain"
)

func callingProvider() ActionProvider {
	return ActionProviderFunc(func(_ context.Context, view TableView) (domain.Action, error) {
		if view.ToCall > 0 {
			return domain.Action{Kind: domain.ActionCall}, nil
		}
		return domain.Action{Kind: domain.ActionCheck}, nil
	})
}

func TestRunner_RequiresProviderPerSeat(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	_, err := NewRunner(c, map[int]ActionProvider{0: callingProvider()}, nil)
	require.Error(t, err)
}

func TestRunHand_PlaysToCompletion(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	providers := map[int]ActionProvider{
		0: callingProvider(),
		1: callingProvider(),
		2: callingProvider(),
	}
	runner, err := NewRunner(c, providers, nil)
	require.NoError(t, err)

	require.NoError(t, runner.RunHand(context.Background()))
	assert.Equal(t, domain.PhasePreGame, c.Phase())

	record, ok := c.LastHandResult()
	require.True(t, ok)
	assert.False(t, record.Aborted)
	assert.Len(t, record.Board, 5)
}

func TestRunHand_FallsBackOnProviderError(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	failing := ActionProviderFunc(func(context.Context, TableView) (domain.Action, error) {
		return domain.Action{}, errors.New("provider offline")
	})
	providers := map[int]ActionProvider{
		0: failing,
		1: callingProvider(),
		2: callingProvider(),
	}
	runner, err := NewRunner(c, providers, nil)
	require.NoError(t, err)

	require.NoError(t, runner.RunHand(context.Background()))
	assert.Equal(t, domain.PhasePreGame, c.Phase(), "failing seat check-folds instead of stalling")
}

func TestRunHand_FallsBackOnIllegalAction(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	cheater := ActionProviderFunc(func(context.Context, TableView) (domain.Action, error) {
		// Raise to one chip: always below the minimum.
		return domain.Action{Kind: domain.ActionRaise, Amount: 1}, nil
	})
	providers := map[int]ActionProvider{
		0: cheater,
		1: callingProvider(),
		2: callingProvider(),
	}
	runner, err := NewRunner(c, providers, nil)
	require.NoError(t, err)

	require.NoError(t, runner.RunHand(context.Background()))
	assert.Equal(t, domain.PhasePreGame, c.Phase())
}

func TestRunHand_HonorsContextCancellation(t *testing.T) {
	t.Parallel()

	c := newTestController(t, 3)
	providers := map[int]ActionProvider{
		0: callingProvider(),
		1: callingProvider(),
		2: callingProvider(),
	}
	runner, err := NewRunner(c, providers, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = runner.RunHand(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

// TestRunGame_FullSessionWithDeciders drives the real decision module for a
// whole session and checks the table-level invariants hold throughout.
func TestRunGame_FullSessionWithDeciders(t *testing.T) {
	t.Parallel()

	cfg := testConfig(4)
	cfg.Seed = 99
	c, err := NewController(cfg, testPlayers(cfg))
	require.NoError(t, err)
	supply := stackSum(c)

	decider := ai.New(cfg.Seed, nil)
	providers := make(map[int]ActionProvider, cfg.NumPlayers)
	for seat := 0; seat < cfg.NumPlayers; seat++ {
		providers[seat] = ActionProviderFunc(func(_ context.Context, view TableView) (domain.Action, error) {
			return decider.Decide(ai.View{
				HoleCards:     view.HoleCards,
				Board:         view.Board,
				CurrentBet:    view.CurrentBet,
				PlayerBet:     view.PlayerBet,
				Stack:         view.Stack,
				MinRaiseTo:    view.MinRaiseTo,
				PotTotal:      view.PotTotal,
				BigBlind:      view.BigBlind,
				PlayersInHand: view.PlayersInHand,
				Position:      view.Position,
			}, ai.IntermediateProfile()), nil
		})
	}

	runner, err := NewRunner(c, providers, nil)
	require.NoError(t, err)

	played, err := runner.RunGame(context.Background(), 50)
	require.NoError(t, err)
	assert.Positive(t, played)
	assert.Equal(t, supply, stackSum(c), "session conserves the chip supply")

	hands := c.Recorder().ListHands()
	assert.Len(t, hands, played)
	for _, hand := range hands {
		assert.False(t, hand.Aborted, "hand %d", hand.HandNo)
	}
}
