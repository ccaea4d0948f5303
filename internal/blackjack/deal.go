package blackjack

import (
	"fmt"
	"sort"

	"github.com/cardroom/platform/internal/domain"
	"github.com/google/uuid"
)

// HandSize is the number of cards dealt to each hand at the start of a round.
const HandSize = 2

// DealInitialHands distributes HandSize cards to every active participation
// and then HandSize to the dealer, consuming the deck from the top: the card
// with the highest position is dealt first. Dealt cards move to player_hand
// with the participation as holder, dealer cards to dealer_hand held by the
// game itself; positions within a hand run sequentially from 0.
//
// The deck slice is mutated in place. The returned slice holds only the
// cards that moved, for the caller to persist. A deck too small for the full
// deal is a fatal integrity fault: nothing is dealt and the caller must roll
// back.
func DealInitialHands(deck []domain.GameCard, participations []domain.Participation, gameID uuid.UUID) ([]domain.GameCard, error) {
	sort.Slice(deck, func(i, j int) bool { return deck[i].Position < deck[j].Position })

	active := make([]domain.Participation, 0, len(participations))
	for _, p := range participations {
		if p.IsActive() {
			active = append(active, p)
		}
	}

	need := HandSize * (len(active) + 1)
	if len(deck) < need {
		return nil, domain.ErrDataIntegrity(
			fmt.Sprintf("deck holds %d cards, %d required to deal", len(deck), need))
	}

	dealt := make([]domain.GameCard, 0, need)
	top := len(deck)

	draw := func(holder uuid.UUID, location domain.CardLocation, handPos int) {
		top--
		card := deck[top]
		holderID := holder
		card.Location = location
		card.HolderID = &holderID
		card.Position = handPos
		dealt = append(dealt, card)
	}

	for _, p := range active {
		for i := 0; i < HandSize; i++ {
			draw(p.ID, domain.LocationPlayerHand, i)
		}
	}
	for i := 0; i < HandSize; i++ {
		draw(gameID, domain.LocationDealerHand, i)
	}

	return dealt, nil
}
