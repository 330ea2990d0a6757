package rules

import (
	"fmt"
	"sort"

	"github.com/tablefelt/holdem-engine/internal/domain"
)

type HandCategory uint8

const (
	HandCategoryHighCard HandCategory = iota + 1
	HandCategoryOnePair
	HandCategoryTwoPair
	HandCategoryThreeOfAKind
	HandCategoryStraight
	HandCategoryFlush
	HandCategoryFullHouse
	HandCategoryFourOfAKind
	HandCategoryStraightFlush
	HandCategoryRoyalFlush
)

// HandRank is a category plus the tie-break key compared lexicographically
// within the category (rank multiplicities first, then kickers high to low).
type HandRank struct {
	Category HandCategory
	Tiebreak []uint8
}

// Evaluate ranks a 5 to 7 card set. With more than 5 cards every 5-card
// combination is scored and the best one wins. Pure and deterministic.
func Evaluate(cards []domain.Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandRank{}, fmt.Errorf("%w: got %d", domain.ErrInvalidHandSize, len(cards))
	}

	if len(cards) == 5 {
		return evaluateFiveCards(cards), nil
	}

	indices := combinations(len(cards), 5)
	hand := make([]domain.Card, 5)
	var best HandRank
	for i, combo := range indices {
		for j, idx := range combo {
			hand[j] = cards[idx]
		}
		candidate := evaluateFiveCards(hand)
		if i == 0 || Compare(candidate, best) > 0 {
			best = candidate
		}
	}
	return best, nil
}

// Compare returns 1, -1, or 0. Zero means a split pot.
func Compare(a HandRank, b HandRank) int {
	if a.Category > b.Category {
		return 1
	}
	if a.Category < b.Category {
		return -1
	}

	n := len(a.Tiebreak)
	if len(b.Tiebreak) < n {
		n = len(b.Tiebreak)
	}
	for i := 0; i < n; i++ {
		if a.Tiebreak[i] > b.Tiebreak[i] {
			return 1
		}
		if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
	}
	if len(a.Tiebreak) > len(b.Tiebreak) {
		return 1
	}
	if len(a.Tiebreak) < len(b.Tiebreak) {
		return -1
	}
	return 0
}

func evaluateFiveCards(cards []domain.Card) HandRank {
	ranks := make([]uint8, 0, 5)
	rankCounts := map[uint8]int{}
	suits := map[domain.Suit]int{}
	for _, card := range cards {
		r := uint8(card.Rank)
		ranks = append(ranks, r)
		rankCounts[r]++
		suits[card.Suit]++
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	isFlush := len(suits) == 1
	straightHigh, isStraight := straightHighRank(ranks)

	if isFlush && isStraight {
		if straightHigh == uint8(domain.RankAce) {
			return HandRank{Category: HandCategoryRoyalFlush, Tiebreak: []uint8{straightHigh}}
		}
		return HandRank{Category: HandCategoryStraightFlush, Tiebreak: []uint8{straightHigh}}
	}

	groups := rankGroups(rankCounts)
	if groups[0].count == 4 {
		return HandRank{Category: HandCategoryFourOfAKind, Tiebreak: []uint8{groups[0].rank, groups[1].rank}}
	}
	if groups[0].count == 3 && groups[1].count == 2 {
		return HandRank{Category: HandCategoryFullHouse, Tiebreak: []uint8{groups[0].rank, groups[1].rank}}
	}
	if isFlush {
		return HandRank{Category: HandCategoryFlush, Tiebreak: ranks}
	}
	if isStraight {
		return HandRank{Category: HandCategoryStraight, Tiebreak: []uint8{straightHigh}}
	}
	if groups[0].count == 3 {
		tiebreak := []uint8{groups[0].rank}
		for _, g := range groups[1:] {
			tiebreak = append(tiebreak, g.rank)
		}
		return HandRank{Category: HandCategoryThreeOfAKind, Tiebreak: tiebreak}
	}
	if groups[0].count == 2 && groups[1].count == 2 {
		highPair := groups[0].rank
		lowPair := groups[1].rank
		if lowPair > highPair {
			highPair, lowPair = lowPair, highPair
		}
		return HandRank{Category: HandCategoryTwoPair, Tiebreak: []uint8{highPair, lowPair, groups[2].rank}}
	}
	if groups[0].count == 2 {
		tiebreak := []uint8{groups[0].rank}
		for _, g := range groups[1:] {
			tiebreak = append(tiebreak, g.rank)
		}
		return HandRank{Category: HandCategoryOnePair, Tiebreak: tiebreak}
	}
	return HandRank{Category: HandCategoryHighCard, Tiebreak: ranks}
}

type rankGroup struct {
	rank  uint8
	count int
}

// rankGroups sorts by multiplicity first, rank second, which yields the
// tie-break key order directly.
func rankGroups(rankCounts map[uint8]int) []rankGroup {
	groups := make([]rankGroup, 0, len(rankCounts))
	for rank, count := range rankCounts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count == groups[j].count {
			return groups[i].rank > groups[j].rank
		}
		return groups[i].count > groups[j].count
	})
	return groups
}

func straightHighRank(ranks []uint8) (uint8, bool) {
	unique := make([]uint8, 0, len(ranks))
	seen := map[uint8]struct{}{}
	for _, rank := range ranks {
		if _, ok := seen[rank]; ok {
			continue
		}
		seen[rank] = struct{}{}
		unique = append(unique, rank)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] > unique[j] })
	if len(unique) != 5 {
		return 0, false
	}

	// Wheel straight: A-2-3-4-5 plays as five high.
	if unique[0] == 14 && unique[1] == 5 && unique[2] == 4 && unique[3] == 3 && unique[4] == 2 {
		return 5, true
	}

	for i := 1; i < 5; i++ {
		if unique[i-1]-1 != unique[i] {
			return 0, false
		}
	}
	return unique[0], true
}

func combinations(n int, choose int) [][]int {
	out := make([][]int, 0)
	combo := make([]int, choose)
	var walk func(start int, depth int)
	walk = func(start int, depth int) {
		if depth == choose {
			copied := append([]int(nil), combo...)
			out = append(out, copied)
			return
		}
		for i := start; i <= n-(choose-depth); i++ {
			combo[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return out
}

func CategoryLabel(category HandCategory) string {
	switch category {
	case HandCategoryRoyalFlush:
		return "Royal Flush"
	case HandCategoryStraightFlush:
		return "Straight Flush"
	case HandCategoryFourOfAKind:
		return "Four of a Kind"
	case HandCategoryFullHouse:
		return "Full House"
	case HandCategoryFlush:
		return "Flush"
	case HandCategoryStraight:
		return "Straight"
	case HandCategoryThreeOfAKind:
		return "Three of a Kind"
	case HandCategoryTwoPair:
		return "Two Pair"
	case HandCategoryOnePair:
		return "One Pair"
	case HandCategoryHighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}
