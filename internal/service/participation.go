package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cardroom/platform/internal/blackjack"
	"github.com/cardroom/platform/internal/domain"
	"github.com/cardroom/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParticipationService handles seats: joining, quitting, betting and hand
// reads. Every mutation is one transaction that locks the game row before
// reading the participation set, so concurrent requests against the same
// game serialize and the ready->playing transition fires exactly once.
type ParticipationService struct {
	pool           *pgxpool.Pool
	games          repository.GameRepository
	participations repository.ParticipationRepository
	users          repository.UserRepository
	cards          repository.GameCardRepository
	outbox         repository.OutboxRepository
	engine         *blackjack.Engine
	logger         *slog.Logger
}

// NewParticipationService creates a ParticipationService.
func NewParticipationService(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	participations repository.ParticipationRepository,
	users repository.UserRepository,
	cards repository.GameCardRepository,
	outbox repository.OutboxRepository,
	engine *blackjack.Engine,
	logger *slog.Logger,
) *ParticipationService {
	return &ParticipationService{
		pool:           pool,
		games:          games,
		participations: participations,
		users:          users,
		cards:          cards,
		outbox:         outbox,
		engine:         engine,
		logger:         logger,
	}
}

// Join seats a user at a ready game, moving the stake from the user's cash
// into the participation.
func (s *ParticipationService) Join(ctx context.Context, userID, gameID uuid.UUID, stake int64) (*domain.Participation, error) {
	if stake < 0 {
		return nil, domain.ErrValidation("stake must not be negative")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	game, err := s.games.LockForUpdate(ctx, tx, gameID)
	if err != nil {
		return nil, domain.ErrInternal("lock game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", gameID.String())
	}
	if game.Status != domain.GameReady {
		return nil, domain.ErrInvalidState("game is not accepting participants")
	}

	user, err := s.users.LockForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, domain.ErrInternal("lock user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}
	if user.Cash < stake {
		return nil, domain.ErrInsufficientFunds()
	}

	seated, err := s.participations.ListByGame(ctx, tx, game.ID)
	if err != nil {
		return nil, domain.ErrInternal("list participations", err)
	}

	participation := &domain.Participation{
		ID:        uuid.New(),
		Position:  domain.NextPosition(seated),
		Status:    domain.ParticipationPlaying,
		Cash:      stake,
		CreatedAt: time.Now().UTC(),
		GameID:    &game.ID,
		UserID:    &user.ID,
	}
	if err := s.participations.Create(ctx, tx, participation); err != nil {
		return nil, domain.ErrInternal("create participation", err)
	}

	if _, err := s.users.AddCash(ctx, tx, user.ID, -stake); err != nil {
		return nil, domain.ErrInternal("debit user", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewParticipationJoinedEvent(participation)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("user joined game",
		"game_id", game.ID, "user_id", user.ID,
		"participation_id", participation.ID, "position", participation.Position)
	return participation, nil
}

// Quit abandons a seat. Only allowed while the game is ready; mid-hand exits
// would strand dealt cards. Quitting may finish the game when every seat has
// quit, or start the round when the quitter was the last seat without a bet.
func (s *ParticipationService) Quit(ctx context.Context, userID, participationID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	participation, game, err := s.lockOwnedParticipation(ctx, tx, userID, participationID)
	if err != nil {
		return err
	}
	if game.Status != domain.GameReady {
		return domain.ErrInvalidState("game is in progress")
	}

	if err := s.participations.UpdateStatus(ctx, tx, participation.ID, domain.ParticipationQuit); err != nil {
		return domain.ErrInternal("update participation status", err)
	}
	participation.Status = domain.ParticipationQuit

	newStatus, _, err := s.engine.EvaluateStatus(ctx, tx, game)
	if err != nil {
		return domain.ErrInternal("evaluate game status", err)
	}
	if newStatus == domain.GamePlaying {
		// Every remaining seat has a live bet, so the quit completes the
		// table. StartRound persists the playing status together with the
		// deal; a bare UpdateState here would strand a playing game with
		// no cards on the table.
		if err := s.engine.StartRound(ctx, tx, game); err != nil {
			return err
		}
	} else if newStatus != game.Status {
		game.Status = newStatus
		if err := s.games.UpdateState(ctx, tx, game); err != nil {
			return domain.ErrInternal("update game state", err)
		}
		if newStatus == domain.GameFinished {
			if err := s.outbox.Insert(ctx, tx, domain.NewGameFinishedEvent(game)); err != nil {
				return domain.ErrInternal("insert outbox event", err)
			}
		}
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewParticipationQuitEvent(participation)); err != nil {
		return domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("user quit game",
		"game_id", game.ID, "participation_id", participation.ID, "game_status", game.Status)
	return nil
}

// PlaceBet sets the seat's wager for the current hand. When the bet
// completes the table (every active seat has bet > 0) the round starts in
// the same transaction: status flips to playing, hands_played increments
// once, and opening hands are dealt.
func (s *ParticipationService) PlaceBet(ctx context.Context, userID, participationID uuid.UUID, amount int64) (*domain.Participation, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	participation, game, err := s.lockOwnedParticipation(ctx, tx, userID, participationID)
	if err != nil {
		return nil, err
	}
	if participation.Status != domain.ParticipationPlaying {
		return nil, domain.ErrInvalidState("participation is terminated")
	}
	if game.Status != domain.GameReady {
		return nil, domain.ErrInvalidState("game is not accepting bets")
	}
	if amount > participation.Cash {
		return nil, domain.ErrInsufficientFunds()
	}

	if err := s.participations.UpdateBet(ctx, tx, participation.ID, amount); err != nil {
		return nil, domain.ErrInternal("update bet", err)
	}
	participation.Bet = amount

	if err := s.outbox.Insert(ctx, tx, domain.NewBetPlacedEvent(participation)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	newStatus, _, err := s.engine.EvaluateStatus(ctx, tx, game)
	if err != nil {
		return nil, domain.ErrInternal("evaluate game status", err)
	}
	if newStatus == domain.GamePlaying {
		// StartRound persists the playing status together with the deal.
		if err := s.engine.StartRound(ctx, tx, game); err != nil {
			return nil, err
		}
	} else if newStatus != game.Status {
		game.Status = newStatus
		if err := s.games.UpdateState(ctx, tx, game); err != nil {
			return nil, domain.ErrInternal("update game state", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return participation, nil
}

// GetHand returns the cards currently held by the participation.
func (s *ParticipationService) GetHand(ctx context.Context, userID, participationID uuid.UUID) ([]domain.GameCard, error) {
	participation, err := s.getOwned(ctx, userID, participationID)
	if err != nil {
		return nil, err
	}
	hand, err := s.cards.ListByHolder(ctx, s.pool, participation.ID, domain.LocationPlayerHand)
	if err != nil {
		return nil, domain.ErrInternal("list hand", err)
	}
	return hand, nil
}

// GetParticipation returns a participation owned by the user.
func (s *ParticipationService) GetParticipation(ctx context.Context, userID, participationID uuid.UUID) (*domain.Participation, error) {
	return s.getOwned(ctx, userID, participationID)
}

// ListByUser returns the user's participations.
func (s *ParticipationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Participation, error) {
	participations, err := s.participations.ListByUser(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("list participations", err)
	}
	return participations, nil
}

// lockOwnedParticipation resolves a participation, checks ownership, and
// locks its game row, establishing the per-game mutual exclusion every
// state change requires.
func (s *ParticipationService) lockOwnedParticipation(ctx context.Context, tx pgx.Tx, userID, participationID uuid.UUID) (*domain.Participation, *domain.Game, error) {
	participation, err := s.participations.FindByID(ctx, tx, participationID)
	if err != nil {
		return nil, nil, domain.ErrInternal("find participation", err)
	}
	if participation == nil {
		return nil, nil, domain.ErrNotFound("participation", participationID.String())
	}
	if participation.UserID == nil || *participation.UserID != userID {
		return nil, nil, domain.ErrUnauthorized("participation belongs to another user")
	}
	if participation.GameID == nil {
		return nil, nil, domain.ErrNotFound("game", "for participation "+participationID.String())
	}

	game, err := s.games.LockForUpdate(ctx, tx, *participation.GameID)
	if err != nil {
		return nil, nil, domain.ErrInternal("lock game", err)
	}
	if game == nil {
		return nil, nil, domain.ErrNotFound("game", participation.GameID.String())
	}
	return participation, game, nil
}

func (s *ParticipationService) getOwned(ctx context.Context, userID, participationID uuid.UUID) (*domain.Participation, error) {
	participation, err := s.participations.FindByID(ctx, s.pool, participationID)
	if err != nil {
		return nil, domain.ErrInternal("find participation", err)
	}
	if participation == nil {
		return nil, domain.ErrNotFound("participation", participationID.String())
	}
	if participation.UserID == nil || *participation.UserID != userID {
		return nil, domain.ErrUnauthorized("participation belongs to another user")
	}
	return participation, nil
}
