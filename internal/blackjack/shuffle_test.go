package blackjack

import (
	"math/rand"
	"testing"

	"github.com/cardroom/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDeck(n int) []domain.GameCard {
	gameID := uuid.New()
	deck := make([]domain.GameCard, n)
	for i := range deck {
		deck[i] = domain.GameCard{
			ID:             uuid.New(),
			GameID:         gameID,
			PhysicalCardID: uuid.New(),
			Location:       domain.LocationDeck,
			Position:       i,
		}
	}
	return deck
}

func TestShufflePositionsIsBijective(t *testing.T) {
	deck := makeDeck(52)
	before := make(map[uuid.UUID]bool, len(deck))
	for _, c := range deck {
		before[c.ID] = true
	}

	ShufflePositions(deck, rand.New(rand.NewSource(1)))

	// Every card survives and positions are exactly 0..51 with no repeats.
	seen := make(map[int]bool, len(deck))
	for _, c := range deck {
		require.True(t, before[c.ID], "card %s appeared from nowhere", c.ID)
		require.False(t, seen[c.Position], "position %d assigned twice", c.Position)
		require.GreaterOrEqual(t, c.Position, 0)
		require.Less(t, c.Position, len(deck))
		seen[c.Position] = true
	}
	assert.Len(t, seen, 52)
}

func TestShufflePositionsPreservesLocationAndHolder(t *testing.T) {
	deck := makeDeck(52)
	ShufflePositions(deck, rand.New(rand.NewSource(7)))

	for _, c := range deck {
		assert.Equal(t, domain.LocationDeck, c.Location)
		assert.Nil(t, c.HolderID)
	}
}

func TestShufflePositionsIsDeterministicPerSeed(t *testing.T) {
	a := makeDeck(52)
	b := make([]domain.GameCard, len(a))
	copy(b, a)

	ShufflePositions(a, rand.New(rand.NewSource(42)))
	ShufflePositions(b, rand.New(rand.NewSource(42)))

	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].Position, b[i].Position)
	}
}

func TestShufflePositionsReshuffle(t *testing.T) {
	deck := makeDeck(52)
	rng := rand.New(rand.NewSource(3))

	ShufflePositions(deck, rng)
	first := make(map[uuid.UUID]int, len(deck))
	for _, c := range deck {
		first[c.ID] = c.Position
	}

	ShufflePositions(deck, rng)

	moved := 0
	seen := make(map[int]bool, len(deck))
	for _, c := range deck {
		require.False(t, seen[c.Position])
		seen[c.Position] = true
		if first[c.ID] != c.Position {
			moved++
		}
	}
	// Still a permutation, and with 52 cards at least one moves.
	assert.Len(t, seen, 52)
	assert.Greater(t, moved, 0)
}
