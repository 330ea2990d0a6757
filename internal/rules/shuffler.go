package rules

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/tablefelt/holdem-engine/internal/domain"
)

type Shuffler interface {
	Shuffle([]domain.Card) error
}

type cryptoShuffler struct{}

type seededShuffler struct {
	rng *rand.Rand
}

func NewCryptoShuffler() Shuffler {
	return cryptoShuffler{}
}

// NewSeededShuffler is deterministic for a given seed; tests use it for
// reproducible deals.
func NewSeededShuffler(seed int64) Shuffler {
	return seededShuffler{rng: rand.New(rand.NewSource(seed))}
}

func (s cryptoShuffler) Shuffle(cards []domain.Card) error {
	for i := len(cards) - 1; i > 0; i-- {
		n, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("crypto shuffle failed: %w", err)
		}
		j := int(n.Int64())
		cards[i], cards[j] = cards[j], cards[i]
	}
	return nil
}

func (s seededShuffler) Shuffle(cards []domain.Card) error {
	for i := len(cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return nil
}
