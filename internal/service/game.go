package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cardroom/platform/internal/blackjack"
	"github.com/cardroom/platform/internal/domain"
	"github.com/cardroom/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameService handles game creation and reads.
type GameService struct {
	pool   *pgxpool.Pool
	games  repository.GameRepository
	outbox repository.OutboxRepository
	engine *blackjack.Engine
	logger *slog.Logger
}

// NewGameService creates a GameService.
func NewGameService(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	outbox repository.OutboxRepository,
	engine *blackjack.Engine,
	logger *slog.Logger,
) *GameService {
	return &GameService{pool: pool, games: games, outbox: outbox, engine: engine, logger: logger}
}

// CreateGame creates a ready game and materializes its shuffled deck in a
// single transaction.
func (s *GameService) CreateGame(ctx context.Context, variant domain.GameVariant) (*domain.Game, error) {
	if !variant.Valid() {
		return nil, domain.ErrValidation("unknown game variant")
	}

	game := &domain.Game{
		ID:        uuid.New(),
		Variant:   variant,
		Status:    domain.GameReady,
		Bank:      domain.DefaultBank,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.games.Create(ctx, tx, game); err != nil {
		return nil, domain.ErrInternal("create game", err)
	}
	if err := s.engine.InitializeDecks(ctx, tx, game); err != nil {
		return nil, err
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewGameCreatedEvent(game)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("game created", "game_id", game.ID, "variant", game.Variant)
	return game, nil
}

// GetGame returns a game by ID.
func (s *GameService) GetGame(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	game, err := s.games.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", id.String())
	}
	return game, nil
}

// ListGames returns recent games.
func (s *GameService) ListGames(ctx context.Context) ([]domain.Game, error) {
	games, err := s.games.List(ctx, s.pool, 50)
	if err != nil {
		return nil, domain.ErrInternal("list games", err)
	}
	return games, nil
}
