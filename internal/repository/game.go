package repository

import (
	"context"
	"fmt"

	"github.com/cardroom/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

const gameColumns = `id, variant, status, hands_played, bank, created_at`

func (r *gameRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (r *gameRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Game, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+gameColumns+` FROM games WHERE id = $1 FOR UPDATE`, id)
	return scanGame(row)
}

func (r *gameRepo) Create(ctx context.Context, db DBTX, game *domain.Game) error {
	_, err := db.Exec(ctx, `
		INSERT INTO games (id, variant, status, hands_played, bank, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		game.ID, game.Variant, game.Status, game.HandsPlayed, game.Bank, game.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *gameRepo) List(ctx context.Context, db DBTX, limit int) ([]domain.Game, error) {
	rows, err := db.Query(ctx, `
		SELECT `+gameColumns+` FROM games
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(&g.ID, &g.Variant, &g.Status, &g.HandsPlayed, &g.Bank, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *gameRepo) UpdateState(ctx context.Context, db DBTX, game *domain.Game) error {
	tag, err := db.Exec(ctx, `
		UPDATE games SET status = $2, hands_played = $3 WHERE id = $1`,
		game.ID, game.Status, game.HandsPlayed,
	)
	if err != nil {
		return fmt.Errorf("update game state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update game state: game %s not found", game.ID)
	}
	return nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	err := row.Scan(&g.ID, &g.Variant, &g.Status, &g.HandsPlayed, &g.Bank, &g.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return &g, nil
}
