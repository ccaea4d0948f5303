package repository

import (
	"context"
	"fmt"

	"github.com/cardroom/platform/internal/domain"
)

type physicalCardRepo struct{}

// NewPhysicalCardRepository returns a pgx-backed PhysicalCardRepository.
func NewPhysicalCardRepository() PhysicalCardRepository {
	return &physicalCardRepo{}
}

func (r *physicalCardRepo) ListByDeckCopies(ctx context.Context, db DBTX, copies int) ([]domain.PhysicalCard, error) {
	rows, err := db.Query(ctx, `
		SELECT id, suit, rank, deck_number FROM physical_cards
		WHERE deck_number <= $1
		ORDER BY deck_number, suit, rank`, copies)
	if err != nil {
		return nil, fmt.Errorf("query physical cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.PhysicalCard
	for rows.Next() {
		var c domain.PhysicalCard
		if err := rows.Scan(&c.ID, &c.Suit, &c.Rank, &c.DeckNumber); err != nil {
			return nil, fmt.Errorf("scan physical card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
