package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/tablefelt/holdem-engine/internal/domain"
	"github.com/tablefelt/holdem-engine/internal/game"
	"github.com/tablefelt/holdem-engine/internal/history"
)

// renderRunReport prints the final session summary: per-hand outcomes and
// a stack leaderboard.
func renderRunReport(players []domain.Player, recorder *history.Recorder, handsPlayed int) {
	pterm.DefaultSection.Println("Session Summary")

	hands := recorder.ListHands()
	handRows := pterm.TableData{{"Hand", "Board", "Winners", "Pot", "Outcome"}}
	for _, hand := range hands {
		handRows = append(handRows, []string{
			fmt.Sprintf("%d", hand.HandNo),
			formatRecordBoard(hand.Board),
			formatWinners(hand),
			fmt.Sprintf("%d", totalAwarded(hand.Awards)),
			outcomeLabel(hand),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(handRows).Render(); err != nil {
		pterm.Warning.Printfln("render hand table: %v", err)
	}

	pterm.DefaultSection.Println("Final Stacks")
	sorted := append([]domain.Player(nil), players...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Stack > sorted[j].Stack })

	stackRows := pterm.TableData{{"Seat", "Player", "Stack", "Status"}}
	for _, p := range sorted {
		stackRows = append(stackRows, []string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			fmt.Sprintf("%d", p.Stack),
			string(p.Status),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(stackRows).Render(); err != nil {
		pterm.Warning.Printfln("render stack table: %v", err)
	}

	pterm.Info.Printfln("hands played: %d", handsPlayed)
	if len(sorted) > 0 && sorted[0].Stack > 0 {
		pterm.Success.Printfln("chip leader: %s with %d", sorted[0].Name, sorted[0].Stack)
	}
}

// renderGameOver announces the winner when one stack holds every chip.
func renderGameOver(controller *game.Controller) {
	for _, p := range controller.Players() {
		if p.Stack > 0 {
			pterm.DefaultBigText.WithLetters(pterm.NewLettersFromString("WINNER")).Render()
			pterm.Success.Printfln("%s takes the table with %d chips", p.Name, p.Stack)
			return
		}
	}
}

func formatRecordBoard(board []domain.Card) string {
	if len(board) == 0 {
		return "(none)"
	}
	cells := make([]string, 0, len(board))
	for _, c := range board {
		cells = append(cells, c.String())
	}
	return strings.Join(cells, " ")
}

func formatWinners(hand history.HandRecord) string {
	seen := map[int]bool{}
	parts := make([]string, 0, 2)
	for _, award := range hand.Awards {
		for _, id := range award.Players {
			if seen[id] {
				continue
			}
			seen[id] = true
			label := fmt.Sprintf("seat%d", id)
			if best, ok := hand.BestHandLabel[id]; ok {
				label += " (" + best + ")"
			}
			parts = append(parts, label)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func totalAwarded(awards []domain.PotAward) uint32 {
	var total uint32
	for _, award := range awards {
		total += award.Amount
	}
	return total
}

func outcomeLabel(hand history.HandRecord) string {
	if hand.Aborted {
		return "aborted: " + hand.AbortReason
	}
	for _, award := range hand.Awards {
		if award.Reason == "uncontested" {
			return "uncontested"
		}
	}
	if len(hand.Awards) > 1 {
		return "showdown (side pots)"
	}
	return "showdown"
}
