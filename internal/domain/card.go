package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
)

// Suits lists the four suits in a stable order used for deck construction
// and rank-then-suit ordering.
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

type Rank uint8

const (
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

func NewRank(value uint8) (Rank, error) {
	if value < 2 || value > 14 {
		return 0, fmt.Errorf("rank must be in range 2..=14, got %d", value)
	}
	return Rank(value), nil
}

// Card is an immutable rank/suit pair. Cards are created in bulk by deck
// construction and never mutated afterwards.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Less orders cards by rank first, suit second.
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return suitOrder(c.Suit) < suitOrder(other.Suit)
}

func (c Card) String() string {
	return formatRank(c.Rank) + formatSuit(c.Suit)
}

// ParseCard reads the compact "As"/"Td"/"9c" notation.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("card notation must be two characters, got %q", s)
	}

	var rank Rank
	switch strings.ToUpper(s[:1]) {
	case "A":
		rank = RankAce
	case "K":
		rank = RankKing
	case "Q":
		rank = RankQueen
	case "J":
		rank = RankJack
	case "T":
		rank = 10
	default:
		parsed, err := strconv.ParseUint(s[:1], 10, 8)
		if err != nil || parsed < 2 || parsed > 9 {
			return Card{}, fmt.Errorf("invalid card rank %q", s[:1])
		}
		rank = Rank(parsed)
	}

	var suit Suit
	switch strings.ToLower(s[1:]) {
	case "c":
		suit = SuitClubs
	case "d":
		suit = SuitDiamonds
	case "h":
		suit = SuitHearts
	case "s":
		suit = SuitSpades
	default:
		return Card{}, fmt.Errorf("invalid card suit %q", s[1:])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

func suitOrder(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return len(Suits)
}

func formatRank(rank Rank) string {
	switch rank {
	case RankAce:
		return "A"
	case RankKing:
		return "K"
	case RankQueen:
		return "Q"
	case RankJack:
		return "J"
	case 10:
		return "T"
	default:
		return strconv.FormatUint(uint64(rank), 10)
	}
}

func formatSuit(suit Suit) string {
	switch suit {
	case SuitClubs:
		return "c"
	case SuitDiamonds:
		return "d"
	case SuitHearts:
		return "h"
	case SuitSpades:
		return "s"
	default:
		return "?"
	}
}
