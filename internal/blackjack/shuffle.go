package blackjack

import (
	"math/rand"

	"github.com/cardroom/platform/internal/domain"
)

// ShufflePositions applies a uniform random permutation to the given cards
// and rewrites each Position as the 0-based index into the permuted order.
// Cards never change location or holder here; only draw order moves.
// Shuffling an already-shuffled deck simply re-randomizes it.
func ShufflePositions(cards []domain.GameCard, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	for i := range cards {
		cards[i].Position = i
	}
}
