package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tablefelt/holdem-engine/internal/ai"
	"github.com/tablefelt/holdem-engine/internal/domain"
	"github.com/tablefelt/holdem-engine/internal/game"
)

var errUnsupportedAction = errors.New("unsupported action")

// aiProvider adapts the decision module to the runner's provider interface.
type aiProvider struct {
	decider *ai.Decider
	profile domain.AIProfile
}

func (p aiProvider) NextAction(_ context.Context, view game.TableView) (domain.Action, error) {
	return p.decider.Decide(ai.View{
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
	}, p.profile), nil
}

// humanProvider prompts on the console and re-prompts on bad input until it
// has a well-formed, legal-looking action.
type humanProvider struct {
	in  *bufio.Scanner
	out io.Writer
}

func newHumanProvider(in io.Reader, out io.Writer) humanProvider {
	return humanProvider{in: bufio.NewScanner(in), out: out}
}

func (p humanProvider) NextAction(ctx context.Context, view game.TableView) (domain.Action, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Action{}, err
		}

		options := "fold(f)/check(k)/raise(r) <amt>/allin(a)"
		if view.ToCall > 0 {
			options = "fold(f)/call(c)/raise(r) <amt>/allin(a)"
		}

		fmt.Fprint(p.out, renderTablePrompt(view, options))
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return domain.Action{}, err
			}
			return domain.Action{}, io.EOF
		}

		action, err := parseHumanAction(p.in.Text())
		if err != nil {
			fmt.Fprintf(p.out, "invalid action. valid: %s\n", options)
			continue
		}
		if err := validateHumanAction(view, action); err != nil {
			fmt.Fprintf(p.out, "illegal action: %v\n", err)
			continue
		}
		return action, nil
	}
}

func parseHumanAction(input string) (domain.Action, error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(parts) == 0 {
		return domain.Action{}, fmt.Errorf("%w: empty action", errUnsupportedAction)
	}

	switch parts[0] {
	case "fold", "f":
		return domain.NewAction(domain.ActionFold, 0)
	case "check", "k":
		return domain.NewAction(domain.ActionCheck, 0)
	case "call", "c":
		return domain.NewAction(domain.ActionCall, 0)
	case "allin", "a":
		return domain.NewAction(domain.ActionAllIn, 0)
	case "raise", "r", "bet", "b":
		if len(parts) != 2 {
			return domain.Action{}, fmt.Errorf("%w: %s requires an amount", errUnsupportedAction, parts[0])
		}
		parsed, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil || parsed == 0 {
			return domain.Action{}, fmt.Errorf("%w: invalid amount %q", errUnsupportedAction, parts[1])
		}
		return domain.NewAction(domain.ActionRaise, uint32(parsed))
	default:
		return domain.Action{}, fmt.Errorf("%w: %q", errUnsupportedAction, input)
	}
}

// validateHumanAction pre-screens obvious mistakes so the table does not
// burn the player's turn on them; the betting round remains the authority.
func validateHumanAction(view game.TableView, action domain.Action) error {
	switch action.Kind {
	case domain.ActionFold, domain.ActionAllIn:
		return nil
	case domain.ActionCheck:
		if view.ToCall != 0 {
			return fmt.Errorf("cannot check facing a bet of %d", view.ToCall)
		}
		return nil
	case domain.ActionCall:
		if view.ToCall == 0 {
			return errors.New("nothing to call; check instead")
		}
		return nil
	case domain.ActionRaise:
		if action.Amount <= view.PlayerBet {
			return fmt.Errorf("raise total %d must exceed your committed %d", action.Amount, view.PlayerBet)
		}
		delta := action.Amount - view.PlayerBet
		if delta > view.Stack {
			return fmt.Errorf("raise requires %d chips but stack is %d", delta, view.Stack)
		}
		if action.Amount < view.MinRaiseTo && delta != view.Stack {
			return fmt.Errorf("raise total %d is below minimum %d", action.Amount, view.MinRaiseTo)
		}
		return nil
	default:
		return fmt.Errorf("unsupported action kind %q", action.Kind)
	}
}

const tablePromptWidth = 58

func renderTablePrompt(view game.TableView, options string) string {
	lines := []string{
		fmt.Sprintf("Hand #%d | %s", view.HandNo, view.Street),
		fmt.Sprintf("Pot: %d | To Call: %d | Min Raise To: %d", view.PotTotal, view.ToCall, view.MinRaiseTo),
		fmt.Sprintf("Board: %s", formatBoard(view.Board)),
		fmt.Sprintf("Your cards: %s | Stack: %d | Committed: %d", formatCards(view.HoleCards), view.Stack, view.PlayerBet),
	}
	for _, seat := range view.Players {
		lines = append(lines, formatSeatLine(seat, view))
	}
	lines = append(lines, fmt.Sprintf("Options: %s", options))

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", tablePromptWidth+2) + "+\n")
	for _, line := range lines {
		if len(line) > tablePromptWidth {
			line = line[:tablePromptWidth]
		}
		fmt.Fprintf(&b, "| %-*s |\n", tablePromptWidth, line)
	}
	b.WriteString("+" + strings.Repeat("-", tablePromptWidth+2) + "+\n")
	b.WriteString("Action > ")
	return b.String()
}

func formatSeatLine(seat game.PlayerPublic, view game.TableView) string {
	marker := " "
	if seat.ID == view.ActingPlayer {
		marker = ">"
	}
	status := ""
	if seat.Status != domain.StatusActive {
		status = " [" + string(seat.Status) + "]"
	}
	return fmt.Sprintf("%s %s | stack:%d | in:%d%s", marker, seat.Name, seat.Stack, seat.CurrentBet, status)
}

func formatBoard(board []domain.Card) string {
	cells := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		if i < len(board) {
			cells = append(cells, board[i].String())
			continue
		}
		cells = append(cells, "--")
	}
	return strings.Join(cells, " ")
}

func formatCards(cards []domain.Card) string {
	cells := make([]string, 0, len(cards))
	for _, c := range cards {
		cells = append(cells, c.String())
	}
	if len(cells) == 0 {
		return "--"
	}
	return strings.Join(cells, " ")
}
