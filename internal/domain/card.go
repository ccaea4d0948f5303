package domain

import "github.com/google/uuid"

// CardSuit is a persisted enum; values must not change once stored.
type CardSuit string

const (
	SuitHearts   CardSuit = "hearts"
	SuitClubs    CardSuit = "clubs"
	SuitDiamonds CardSuit = "diamonds"
	SuitSpades   CardSuit = "spades"
)

// AllSuits returns the four suits in catalog order.
func AllSuits() []CardSuit {
	return []CardSuit{SuitHearts, SuitClubs, SuitDiamonds, SuitSpades}
}

// CardRank is a persisted enum; values must not change once stored.
type CardRank string

const (
	RankAce   CardRank = "ace"
	RankTwo   CardRank = "2"
	RankThree CardRank = "3"
	RankFour  CardRank = "4"
	RankFive  CardRank = "5"
	RankSix   CardRank = "6"
	RankSeven CardRank = "7"
	RankEight CardRank = "8"
	RankNine  CardRank = "9"
	RankTen   CardRank = "10"
	RankJack  CardRank = "jack"
	RankQueen CardRank = "queen"
	RankKing  CardRank = "king"
)

// AllRanks returns the thirteen ranks in catalog order.
func AllRanks() []CardRank {
	return []CardRank{
		RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
		RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
	}
}

// CardLocation tracks where a game card physically is.
type CardLocation string

const (
	LocationDeck       CardLocation = "deck"
	LocationDealerHand CardLocation = "dealer_hand"
	LocationPlayerHand CardLocation = "player_hand"
	LocationDiscard    CardLocation = "discard"
)

// PhysicalCard is an immutable catalog row. (suit, rank, deck_number) is
// unique; deck_number identifies which physical pack the card belongs to.
type PhysicalCard struct {
	ID         uuid.UUID `json:"id"`
	Suit       CardSuit  `json:"suit"`
	Rank       CardRank  `json:"rank"`
	DeckNumber int       `json:"deck_number"`
}

// GameCard binds a physical card into one game, tracking its current
// location and holder. Position is the draw order while in the deck and a
// sequential index within a hand.
type GameCard struct {
	ID             uuid.UUID    `json:"id"`
	GameID         uuid.UUID    `json:"game_id"`
	PhysicalCardID uuid.UUID    `json:"physical_card_id"`
	Location       CardLocation `json:"location"`
	HolderID       *uuid.UUID   `json:"holder_id,omitempty"`
	Position       int          `json:"position"`
}

// InDeck reports whether the card is still available to be drawn.
func (c *GameCard) InDeck() bool {
	return c.Location == LocationDeck
}
