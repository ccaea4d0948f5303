package repository

import (
	"context"
	"fmt"

	"github.com/cardroom/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type participationRepo struct{}

// NewParticipationRepository returns a pgx-backed ParticipationRepository.
func NewParticipationRepository() ParticipationRepository {
	return &participationRepo{}
}

const participationColumns = `id, position, status, bet, cash, created_at, game_id, user_id`

func (r *participationRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Participation, error) {
	row := db.QueryRow(ctx, `
		SELECT `+participationColumns+` FROM participations WHERE id = $1`, id)
	return scanParticipation(row)
}

func (r *participationRepo) ListByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.Participation, error) {
	rows, err := db.Query(ctx, `
		SELECT `+participationColumns+` FROM participations
		WHERE game_id = $1 ORDER BY position ASC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query participations: %w", err)
	}
	defer rows.Close()
	return collectParticipations(rows)
}

func (r *participationRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Participation, error) {
	rows, err := db.Query(ctx, `
		SELECT `+participationColumns+` FROM participations
		WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query participations: %w", err)
	}
	defer rows.Close()
	return collectParticipations(rows)
}

func (r *participationRepo) Create(ctx context.Context, db DBTX, p *domain.Participation) error {
	_, err := db.Exec(ctx, `
		INSERT INTO participations (id, position, status, bet, cash, created_at, game_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Position, p.Status, p.Bet, p.Cash, p.CreatedAt, p.GameID, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert participation: %w", err)
	}
	return nil
}

func (r *participationRepo) UpdateBet(ctx context.Context, db DBTX, id uuid.UUID, bet int64) error {
	_, err := db.Exec(ctx, `UPDATE participations SET bet = $2 WHERE id = $1`, id, bet)
	if err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	return nil
}

func (r *participationRepo) UpdateStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.ParticipationStatus) error {
	_, err := db.Exec(ctx, `UPDATE participations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update participation status: %w", err)
	}
	return nil
}

func collectParticipations(rows pgx.Rows) ([]domain.Participation, error) {
	var out []domain.Participation
	for rows.Next() {
		var p domain.Participation
		if err := rows.Scan(&p.ID, &p.Position, &p.Status, &p.Bet, &p.Cash, &p.CreatedAt, &p.GameID, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan participation: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanParticipation(row pgx.Row) (*domain.Participation, error) {
	var p domain.Participation
	err := row.Scan(&p.ID, &p.Position, &p.Status, &p.Bet, &p.Cash, &p.CreatedAt, &p.GameID, &p.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan participation: %w", err)
	}
	return &p, nil
}
