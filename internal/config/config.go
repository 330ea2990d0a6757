// Package config loads engine configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrInvalidPlayerCount    = errors.New("player count must be between 2 and 10")
	ErrInvalidBlindStructure = errors.New("big blind must be greater than or equal to small blind")
)

type Config struct {
	NumPlayers    int    `env:"HOLDEM_PLAYERS" env-default:"4"`
	StartingStack uint32 `env:"HOLDEM_STARTING_STACK" env-default:"1000"`
	SmallBlind    uint32 `env:"HOLDEM_SMALL_BLIND" env-default:"10"`
	BigBlind      uint32 `env:"HOLDEM_BIG_BLIND" env-default:"20"`

	// Seed fixes every shuffle and AI decision for reproducible runs.
	// Zero selects OS randomness.
	Seed int64 `env:"HOLDEM_SEED" env-default:"0"`

	// AIDifficulty is "beginner" or "intermediate".
	AIDifficulty string `env:"HOLDEM_AI_DIFFICULTY" env-default:"beginner"`

	// HumanSeat reserves one seat for externally submitted actions.
	// Negative means every seat is AI-driven.
	HumanSeat int `env:"HOLDEM_HUMAN_SEAT" env-default:"-1"`

	// RevealBoardOnUncontested deals out the remaining community cards
	// before paying an uncontested pot. Off by default: the hand
	// short-circuits straight to payout.
	RevealBoardOnUncontested bool `env:"HOLDEM_REVEAL_UNCONTESTED" env-default:"false"`

	HandsToRun int `env:"HOLDEM_HANDS" env-default:"20"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Default() Config {
	return Config{
		NumPlayers:    4,
		StartingStack: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		AIDifficulty:  "beginner",
		HumanSeat:     -1,
		HandsToRun:    20,
	}
}

func (c Config) Validate() error {
	if c.NumPlayers < 2 || c.NumPlayers > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, c.NumPlayers)
	}
	if c.BigBlind < c.SmallBlind {
		return ErrInvalidBlindStructure
	}
	if c.SmallBlind == 0 {
		return errors.New("small blind must be positive")
	}
	if c.StartingStack < c.BigBlind {
		return fmt.Errorf("starting stack %d cannot cover the big blind %d", c.StartingStack, c.BigBlind)
	}
	if c.AIDifficulty != "beginner" && c.AIDifficulty != "intermediate" {
		return fmt.Errorf("unknown ai difficulty %q", c.AIDifficulty)
	}
	if c.HumanSeat >= c.NumPlayers {
		return fmt.Errorf("human seat %d out of range for %d players", c.HumanSeat, c.NumPlayers)
	}
	return nil
}
