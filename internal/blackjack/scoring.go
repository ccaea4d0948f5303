package blackjack

import (
	"errors"

	"github.com/cardroom/platform/internal/domain"
)

// ErrScoringNotImplemented is returned by the default Scorer. The naturals
// check after the initial deal runs structurally but no scoring rule is
// defined yet.
var ErrScoringNotImplemented = errors.New("hand scoring not implemented")

// Scorer computes the value of a hand.
//
// TODO: implement blackjack hand values (ace counting 1 or 11, face cards 10)
// so the naturals check can detect blackjacks dealt on the opening hand.
type Scorer interface {
	ScoreHand(cards []domain.GameCard) (int, error)
}

type unscoredHands struct{}

// NewUnscoredHands returns the default Scorer, which scores nothing.
func NewUnscoredHands() Scorer {
	return unscoredHands{}
}

func (unscoredHands) ScoreHand(_ []domain.GameCard) (int, error) {
	return 0, ErrScoringNotImplemented
}
