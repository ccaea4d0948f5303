package repository

import (
	"context"
	"fmt"

	"github.com/cardroom/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type gameCardRepo struct{}

// NewGameCardRepository returns a pgx-backed GameCardRepository.
func NewGameCardRepository() GameCardRepository {
	return &gameCardRepo{}
}

const gameCardColumns = `id, game_id, physical_card_id, location, holder_id, position`

func (r *gameCardRepo) CountByGame(ctx context.Context, db DBTX, gameID uuid.UUID) (int, error) {
	var n int
	err := db.QueryRow(ctx, `
		SELECT count(*) FROM game_cards WHERE game_id = $1`, gameID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count game cards: %w", err)
	}
	return n, nil
}

func (r *gameCardRepo) ListDeck(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.GameCard, error) {
	rows, err := db.Query(ctx, `
		SELECT `+gameCardColumns+` FROM game_cards
		WHERE game_id = $1 AND location = $2
		ORDER BY position ASC`, gameID, domain.LocationDeck)
	if err != nil {
		return nil, fmt.Errorf("query deck: %w", err)
	}
	defer rows.Close()
	return collectGameCards(rows)
}

func (r *gameCardRepo) ListByHolder(ctx context.Context, db DBTX, holderID uuid.UUID, location domain.CardLocation) ([]domain.GameCard, error) {
	rows, err := db.Query(ctx, `
		SELECT `+gameCardColumns+` FROM game_cards
		WHERE holder_id = $1 AND location = $2
		ORDER BY position ASC`, holderID, location)
	if err != nil {
		return nil, fmt.Errorf("query hand: %w", err)
	}
	defer rows.Close()
	return collectGameCards(rows)
}

func (r *gameCardRepo) CountByLocation(ctx context.Context, db DBTX, gameID uuid.UUID, location domain.CardLocation) (int, error) {
	var n int
	err := db.QueryRow(ctx, `
		SELECT count(*) FROM game_cards WHERE game_id = $1 AND location = $2`,
		gameID, location).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by location: %w", err)
	}
	return n, nil
}

func (r *gameCardRepo) BulkInsert(ctx context.Context, db DBTX, cards []domain.GameCard) error {
	ids := make([]uuid.UUID, len(cards))
	gameIDs := make([]uuid.UUID, len(cards))
	physIDs := make([]uuid.UUID, len(cards))
	locations := make([]string, len(cards))
	positions := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
		gameIDs[i] = c.GameID
		physIDs[i] = c.PhysicalCardID
		locations[i] = string(c.Location)
		positions[i] = c.Position
	}

	_, err := db.Exec(ctx, `
		INSERT INTO game_cards (id, game_id, physical_card_id, location, holder_id, position)
		SELECT u.id, u.game_id, u.physical_card_id, u.location, NULL, u.position
		FROM unnest($1::uuid[], $2::uuid[], $3::uuid[], $4::text[], $5::int[])
		  AS u(id, game_id, physical_card_id, location, position)`,
		ids, gameIDs, physIDs, locations, positions,
	)
	if err != nil {
		return fmt.Errorf("bulk insert game cards: %w", err)
	}
	return nil
}

func (r *gameCardRepo) UpdatePositions(ctx context.Context, db DBTX, cards []domain.GameCard) error {
	ids := make([]uuid.UUID, len(cards))
	positions := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
		positions[i] = c.Position
	}

	_, err := db.Exec(ctx, `
		UPDATE game_cards gc SET position = u.position
		FROM unnest($1::uuid[], $2::int[]) AS u(id, position)
		WHERE gc.id = u.id`,
		ids, positions,
	)
	if err != nil {
		return fmt.Errorf("update positions: %w", err)
	}
	return nil
}

func (r *gameCardRepo) Move(ctx context.Context, db DBTX, card *domain.GameCard) error {
	tag, err := db.Exec(ctx, `
		UPDATE game_cards SET location = $2, holder_id = $3, position = $4
		WHERE id = $1`,
		card.ID, card.Location, card.HolderID, card.Position,
	)
	if err != nil {
		return fmt.Errorf("move game card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("move game card: card %s not found", card.ID)
	}
	return nil
}

func collectGameCards(rows pgx.Rows) ([]domain.GameCard, error) {
	var out []domain.GameCard
	for rows.Next() {
		var c domain.GameCard
		if err := rows.Scan(&c.ID, &c.GameID, &c.PhysicalCardID, &c.Location, &c.HolderID, &c.Position); err != nil {
			return nil, fmt.Errorf("scan game card: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
