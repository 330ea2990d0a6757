package rules

import (
	"testing"

	phpoker "github.com/paulhankin/poker"

	"github.com/tablefelt/holdem-engine/internal/domain"
)

func cards(t *testing.T, notations ...string) []domain.Card {
	t.Helper()
	out := make([]domain.Card, 0, len(notations))
	for _, n := range notations {
		card, err := domain.ParseCard(n)
		if err != nil {
			t.Fatalf("parse card %q: %v", n, err)
		}
		out = append(out, card)
	}
	return out
}

func TestEvaluate_AllCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		category HandCategory
	}{
		{
			name:     "high card",
			cards:    []string{"As", "7d", "2c", "4h", "9s", "Jd", "3c"},
			category: HandCategoryHighCard,
		},
		{
			name:     "one pair",
			cards:    []string{"As", "Ad", "2c", "4h", "9s", "Jd", "3c"},
			category: HandCategoryOnePair,
		},
		{
			name:     "two pair",
			cards:    []string{"As", "Ad", "2c", "2h", "9s", "Jd", "3c"},
			category: HandCategoryTwoPair,
		},
		{
			name:     "trips",
			cards:    []string{"As", "Ad", "Ac", "2h", "9s", "Jd", "3c"},
			category: HandCategoryThreeOfAKind,
		},
		{
			name:     "straight",
			cards:    []string{"8s", "7d", "6c", "5h", "4s", "Kd", "3c"},
			category: HandCategoryStraight,
		},
		{
			name:     "flush",
			cards:    []string{"As", "7s", "2s", "4s", "9s", "Jd", "3c"},
			category: HandCategoryFlush,
		},
		{
			name:     "full house",
			cards:    []string{"7s", "7d", "7c", "2h", "2s", "Jd", "3c"},
			category: HandCategoryFullHouse,
		},
		{
			name:     "quads",
			cards:    []string{"As", "Ad", "Ac", "Ah", "2s", "Jd", "3c"},
			category: HandCategoryFourOfAKind,
		},
		{
			name:     "straight flush",
			cards:    []string{"8s", "7s", "6s", "5s", "4s", "Jd", "3c"},
			category: HandCategoryStraightFlush,
		},
		{
			name:     "royal flush",
			cards:    []string{"Ts", "Js", "Qs", "Ks", "As", "2h", "3c"},
			category: HandCategoryRoyalFlush,
		},
		{
			name:     "exact five cards",
			cards:    []string{"As", "Ad", "2c", "4h", "9s"},
			category: HandCategoryOnePair,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rank, err := Evaluate(cards(t, tc.cards...))
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if rank.Category != tc.category {
				t.Fatalf("expected %s, got %s", CategoryLabel(tc.category), CategoryLabel(rank.Category))
			}
		})
	}
}

func TestEvaluate_InvalidHandSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 4, 8} {
		deck := domain.NewDeck()
		if _, err := Evaluate(deck.Cards[:size]); err == nil {
			t.Fatalf("expected error for %d cards", size)
		}
	}
}

func TestEvaluate_WheelStraight(t *testing.T) {
	t.Parallel()

	rank, err := Evaluate(cards(t, "As", "2d", "3c", "4h", "5s", "Kd", "Qc"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if rank.Category != HandCategoryStraight {
		t.Fatalf("expected straight, got %s", CategoryLabel(rank.Category))
	}
	if rank.Tiebreak[0] != 5 {
		t.Fatalf("wheel plays five high, got %d", rank.Tiebreak[0])
	}

	broadway, err := Evaluate(cards(t, "As", "Kd", "Qc", "Jh", "Ts", "2d", "3c"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if Compare(broadway, rank) <= 0 {
		t.Fatal("broadway straight must beat the wheel")
	}
}

func TestCompare_TieBreakers(t *testing.T) {
	t.Parallel()

	eval := func(notations ...string) HandRank {
		rank, err := Evaluate(cards(t, notations...))
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		return rank
	}

	betterTwoPair := eval("As", "Ad", "Ks", "Kh", "2c", "9d", "3c")
	worseTwoPair := eval("Qs", "Qd", "Js", "Jh", "2c", "9d", "3c")
	if Compare(betterTwoPair, worseTwoPair) <= 0 {
		t.Fatal("expected aces up to beat queens up")
	}

	betterKicker := eval("As", "Kd", "Ac", "7h", "4s", "3d", "2c")
	worseKicker := eval("As", "Qd", "Ac", "7h", "4s", "3d", "2c")
	if Compare(betterKicker, worseKicker) <= 0 {
		t.Fatal("expected the king kicker to win")
	}

	// Same best five out of seven splits the pot.
	split1 := eval("2c", "3d", "As", "Ks", "Qs", "Js", "Ts")
	split2 := eval("4h", "5h", "As", "Ks", "Qs", "Js", "Ts")
	if Compare(split1, split2) != 0 {
		t.Fatal("identical board-playing hands must tie")
	}

	better := eval("9s", "9d", "9c", "2h", "2s", "Jd", "3c")
	worse := eval("8s", "8d", "8c", "Ah", "As", "Jd", "3c")
	if Compare(better, worse) <= 0 {
		t.Fatal("nines full must beat eights full")
	}
}

// TestEvaluate_AgainstReferenceEvaluator checks pairwise ordering against an
// independent evaluator over seeded random 7-card deals.
func TestEvaluate_AgainstReferenceEvaluator(t *testing.T) {
	t.Parallel()

	shuffler := NewSeededShuffler(42)
	for trial := 0; trial < 200; trial++ {
		deck := domain.NewDeck()
		if err := shuffler.Shuffle(deck.Cards); err != nil {
			t.Fatalf("shuffle: %v", err)
		}
		a := deck.Cards[:7]
		b := deck.Cards[7:14]

		rankA, err := Evaluate(a)
		if err != nil {
			t.Fatalf("evaluate a: %v", err)
		}
		rankB, err := Evaluate(b)
		if err != nil {
			t.Fatalf("evaluate b: %v", err)
		}

		refA := referenceScore(t, a)
		refB := referenceScore(t, b)

		got := Compare(rankA, rankB)
		want := 0
		if refA > refB {
			want = 1
		} else if refA < refB {
			want = -1
		}
		if got != want {
			t.Fatalf("trial %d: compare %v vs %v = %d, reference says %d", trial, a, b, got, want)
		}
	}
}

func referenceScore(t *testing.T, hand []domain.Card) int16 {
	t.Helper()
	var seven [7]phpoker.Card
	for i, c := range hand {
		seven[i] = referenceCard(t, c)
	}
	return phpoker.Eval7(&seven)
}

func referenceCard(t *testing.T, c domain.Card) phpoker.Card {
	t.Helper()
	var suit phpoker.Suit
	switch c.Suit {
	case domain.SuitClubs:
		suit = phpoker.Club
	case domain.SuitDiamonds:
		suit = phpoker.Diamond
	case domain.SuitHearts:
		suit = phpoker.Heart
	case domain.SuitSpades:
		suit = phpoker.Spade
	}
	rank := phpoker.Rank(c.Rank)
	if c.Rank == domain.RankAce {
		rank = phpoker.Rank(1)
	}
	card, err := phpoker.MakeCard(suit, rank)
	if err != nil {
		t.Fatalf("make reference card %s: %v", c, err)
	}
	return card
}
