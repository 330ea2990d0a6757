package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tablefelt/holdem-engine/internal/domain"
)

// ActionProvider supplies a betting decision for one seat. Implementations
// include the rule-based computer opponents and the interactive console
// seat; both see the same redacted view.
type ActionProvider interface {
	NextAction(ctx context.Context, view TableView) (domain.Action, error)
}

// ActionProviderFunc adapts a function to the ActionProvider interface.
type ActionProviderFunc func(ctx context.Context, view TableView) (domain.Action, error)

func (f ActionProviderFunc) NextAction(ctx context.Context, view TableView) (domain.Action, error) {
	return f(ctx, view)
}

// maxActionsPerHand bounds a hand against a provider that loops. With ten
// seats and min-raise escalation a real hand stays far below this.
const maxActionsPerHand = 512

// Runner drives hands to completion by pumping provider decisions into the
// controller.
type Runner struct {
	controller *Controller
	providers  map[int]ActionProvider
	logger     *log.Logger
}

func NewRunner(controller *Controller, providers map[int]ActionProvider, logger *log.Logger) (*Runner, error) {
	if controller == nil {
		return nil, errors.New("runner needs a controller")
	}
	for _, p := range controller.Players() {
		if _, ok := providers[p.ID]; !ok {
			return nil, fmt.Errorf("no action provider for seat %d", p.ID)
		}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		controller: controller,
		providers:  providers,
		logger:     logger.WithPrefix("runner"),
	}, nil
}

// RunHand plays one complete hand. A provider error or an illegal decision
// falls back to check, then fold, so a misbehaving seat cannot stall the
// table.
func (r *Runner) RunHand(ctx context.Context) error {
	if err := r.controller.StartHand(); err != nil {
		return err
	}

	for actions := 0; actions < maxActionsPerHand; actions++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		seat, ok := r.controller.CurrentActor()
		if !ok {
			return nil
		}

		view := r.controller.View(seat)
		action, err := r.providers[seat].NextAction(ctx, view)
		if err != nil {
			r.logger.Warn("provider failed, falling back", "seat", seat, "err", err)
			action = fallbackAction(view)
		}

		if err := r.controller.SubmitAction(seat, action); err != nil {
			if errors.Is(err, domain.ErrIllegalAction) || errors.Is(err, domain.ErrInsufficientChips) {
				r.logger.Warn("illegal action, falling back", "seat", seat, "action", action.String(), "err", err)
				if err := r.controller.SubmitAction(seat, fallbackAction(view)); err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return fmt.Errorf("hand exceeded %d actions", maxActionsPerHand)
}

// RunGame plays up to maxHands hands or until one player holds every chip.
// Returns the number of hands completed.
func (r *Runner) RunGame(ctx context.Context, maxHands int) (int, error) {
	played := 0
	for played < maxHands {
		if r.controller.Phase() == domain.PhaseGameOver {
			break
		}
		if err := r.RunHand(ctx); err != nil {
			if errors.Is(err, domain.ErrGameOver) {
				break
			}
			return played, err
		}
		played++
		r.logger.Debug("hand complete", "hand", r.controller.HandNo(), "pot_awarded", true)
	}
	return played, nil
}

// fallbackAction is the safe default: check when free, fold otherwise.
func fallbackAction(view TableView) domain.Action {
	if view.ToCall == 0 {
		return domain.Action{Kind: domain.ActionCheck}
	}
	return domain.Action{Kind: domain.ActionFold}
}
