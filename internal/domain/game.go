package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameVariant selects how many physical packs the game plays with.
type GameVariant string

const (
	VariantOneDeck  GameVariant = "one_deck"
	VariantTwoDecks GameVariant = "two_decks"
)

// DeckCopies returns the number of physical packs for the variant.
func (v GameVariant) DeckCopies() int {
	if v == VariantTwoDecks {
		return 2
	}
	return 1
}

// Valid reports whether v is a known variant.
func (v GameVariant) Valid() bool {
	return v == VariantOneDeck || v == VariantTwoDecks
}

// GameStatus is the lifecycle state of a game. Finished is absorbing.
type GameStatus string

const (
	GameReady    GameStatus = "ready"
	GamePlaying  GameStatus = "playing"
	GameFinished GameStatus = "finished"
)

// Game represents a games row. Status is derived from the participations
// via EvaluateGameStatus; hands_played only ever increases.
type Game struct {
	ID          uuid.UUID   `json:"id"`
	Variant     GameVariant `json:"variant"`
	Status      GameStatus  `json:"status"`
	HandsPlayed int         `json:"hands_played"`
	Bank        int64       `json:"bank"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DefaultBank is the house reserve a new game starts with.
const DefaultBank int64 = 1000
