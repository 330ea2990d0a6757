// Command holdem runs a no-limit hold'em table on the console: computer
// opponents at every seat, optionally one interactive seat.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/tablefelt/holdem-engine/internal/ai"
	"github.com/tablefelt/holdem-engine/internal/config"
	"github.com/tablefelt/holdem-engine/internal/domain"
	"github.com/tablefelt/holdem-engine/internal/game"
	"github.com/tablefelt/holdem-engine/internal/history"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "holdem",
	})
	if os.Getenv("HOLDEM_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	players := make([]domain.Player, 0, cfg.NumPlayers)
	for seat := 0; seat < cfg.NumPlayers; seat++ {
		name := fmt.Sprintf("Bot %d", seat)
		if seat == cfg.HumanSeat {
			name = "You"
		}
		p := domain.NewPlayer(seat, name, cfg.StartingStack)
		p.IsHuman = seat == cfg.HumanSeat
		players = append(players, p)
	}

	recorder := history.NewRecorder()
	controller, err := game.NewController(cfg, players,
		game.WithLogger(logger),
		game.WithRecorder(recorder),
	)
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}

	decider := ai.New(cfg.Seed, logger)
	profile := ai.ProfileFor(cfg.AIDifficulty)
	providers := make(map[int]game.ActionProvider, cfg.NumPlayers)
	for seat := 0; seat < cfg.NumPlayers; seat++ {
		if seat == cfg.HumanSeat {
			providers[seat] = newHumanProvider(os.Stdin, os.Stdout)
			continue
		}
		providers[seat] = aiProvider{decider: decider, profile: profile}
	}

	runner, err := game.NewRunner(controller, providers, logger)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	logger.Info("starting table",
		"players", cfg.NumPlayers,
		"stack", cfg.StartingStack,
		"blinds", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind),
		"difficulty", cfg.AIDifficulty,
		"hands", cfg.HandsToRun,
	)

	played, err := runner.RunGame(ctx, cfg.HandsToRun)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run game: %w", err)
	}

	renderRunReport(controller.Players(), recorder, played)
	if controller.Phase() == domain.PhaseGameOver {
		renderGameOver(controller)
	}
	return nil
}
