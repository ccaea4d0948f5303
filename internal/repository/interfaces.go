package repository

import (
	"context"

	"github.com/cardroom/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// UserRepository provides access to users.
type UserRepository interface {
	// FindByID returns a user by ID, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error)

	// FindByEmail returns a user by email, nil if absent.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns the user.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, db DBTX, user *domain.User) error

	// AddCash applies a signed delta to the user's cash with server-side
	// arithmetic and returns the updated row.
	AddCash(ctx context.Context, db DBTX, id uuid.UUID, delta int64) (*domain.User, error)
}

// GameRepository provides access to games.
type GameRepository interface {
	// FindByID returns a game by ID, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error)

	// LockForUpdate acquires the per-game row lock that serializes every
	// state-changing operation on the game.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Game, error)

	// Create inserts a new game.
	Create(ctx context.Context, db DBTX, game *domain.Game) error

	// List returns games ordered by creation time, newest first.
	List(ctx context.Context, db DBTX, limit int) ([]domain.Game, error)

	// UpdateState persists the game's status and hands_played counter.
	UpdateState(ctx context.Context, db DBTX, game *domain.Game) error
}

// ParticipationRepository provides access to participations.
type ParticipationRepository interface {
	// FindByID returns a participation by ID, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Participation, error)

	// ListByGame returns every participation seated at the game, by position.
	ListByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.Participation, error)

	// ListByUser returns a user's participations, newest first.
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Participation, error)

	// Create inserts a new participation.
	Create(ctx context.Context, db DBTX, p *domain.Participation) error

	// UpdateBet sets the wager for the current hand.
	UpdateBet(ctx context.Context, db DBTX, id uuid.UUID, bet int64) error

	// UpdateStatus sets the seat status (playing -> quit is terminal).
	UpdateStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.ParticipationStatus) error
}

// PhysicalCardRepository provides read access to the immutable card catalog.
type PhysicalCardRepository interface {
	// ListByDeckCopies returns all catalog cards with deck_number <= copies,
	// in stable catalog order.
	ListByDeckCopies(ctx context.Context, db DBTX, copies int) ([]domain.PhysicalCard, error)
}

// GameCardRepository provides access to game_cards.
type GameCardRepository interface {
	// CountByGame returns how many cards are bound to the game in any location.
	CountByGame(ctx context.Context, db DBTX, gameID uuid.UUID) (int, error)

	// ListDeck returns the game's cards still in the deck, position ascending.
	ListDeck(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.GameCard, error)

	// ListByHolder returns the cards currently held in the given location by
	// the given holder (a participation, or the game itself for the dealer).
	ListByHolder(ctx context.Context, db DBTX, holderID uuid.UUID, location domain.CardLocation) ([]domain.GameCard, error)

	// CountByLocation returns how many of the game's cards sit in a location.
	CountByLocation(ctx context.Context, db DBTX, gameID uuid.UUID, location domain.CardLocation) (int, error)

	// BulkInsert creates the game's card set in one round trip.
	BulkInsert(ctx context.Context, db DBTX, cards []domain.GameCard) error

	// UpdatePositions rewrites the position of each given card.
	UpdatePositions(ctx context.Context, db DBTX, cards []domain.GameCard) error

	// Move reassigns a card's location, holder and position.
	Move(ctx context.Context, db DBTX, card *domain.GameCard) error
}

// OutboxRow is an event_outbox row with its sequence ID for the poller.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event within the caller's transaction.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events in sequence order.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
