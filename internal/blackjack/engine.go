package blackjack

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/cardroom/platform/internal/domain"
	"github.com/cardroom/platform/internal/repository"
	"github.com/google/uuid"
)

// Engine owns the deck state machine: materializing a game's cards from the
// catalog, shuffling draw order, and dealing opening hands on the
// ready->playing transition.
//
// Every method runs against the caller's unit of work. Callers serialize
// state changes per game by locking the game row before invoking the engine,
// so two concurrent bets can never both trigger the same deal.
type Engine struct {
	games          repository.GameRepository
	participations repository.ParticipationRepository
	catalog        repository.PhysicalCardRepository
	cards          repository.GameCardRepository
	outbox         repository.OutboxRepository
	scorer         Scorer
	logger         *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an engine over the given repositories. A nil rng falls
// back to a time-seeded source; tests inject a fixed seed.
func NewEngine(
	games repository.GameRepository,
	participations repository.ParticipationRepository,
	catalog repository.PhysicalCardRepository,
	cards repository.GameCardRepository,
	outbox repository.OutboxRepository,
	rng *rand.Rand,
	logger *slog.Logger,
) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		games:          games,
		participations: participations,
		catalog:        catalog,
		cards:          cards,
		outbox:         outbox,
		scorer:         NewUnscoredHands(),
		logger:         logger,
		rng:            rng,
	}
}

// InitializeDecks materializes one game card per catalog card for the game's
// variant (one_deck uses pack 1, two_decks packs 1 and 2), all in the deck
// location with catalog-order positions, then shuffles. Idempotent: a game
// that is not ready, or that already has cards, is left untouched. Partially
// created decks are never observable because this runs inside the caller's
// transaction.
func (e *Engine) InitializeDecks(ctx context.Context, db repository.DBTX, game *domain.Game) error {
	if game.Status != domain.GameReady {
		return nil
	}

	existing, err := e.cards.CountByGame(ctx, db, game.ID)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	physical, err := e.catalog.ListByDeckCopies(ctx, db, game.Variant.DeckCopies())
	if err != nil {
		return err
	}
	if len(physical) == 0 {
		return domain.ErrDataIntegrity("card catalog is empty")
	}

	gameCards := make([]domain.GameCard, len(physical))
	for i, pc := range physical {
		gameCards[i] = domain.GameCard{
			ID:             uuid.New(),
			GameID:         game.ID,
			PhysicalCardID: pc.ID,
			Location:       domain.LocationDeck,
			Position:       i,
		}
	}
	if err := e.cards.BulkInsert(ctx, db, gameCards); err != nil {
		return err
	}

	e.logger.Info("deck initialized",
		"game_id", game.ID, "variant", game.Variant, "cards", len(gameCards))

	return e.ShuffleDeck(ctx, db, game)
}

// ShuffleDeck re-randomizes the draw order of the game's remaining deck
// cards. Re-entrant; cards never change location.
func (e *Engine) ShuffleDeck(ctx context.Context, db repository.DBTX, game *domain.Game) error {
	deck, err := e.cards.ListDeck(ctx, db, game.ID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	ShufflePositions(deck, e.rng)
	e.mu.Unlock()

	return e.cards.UpdatePositions(ctx, db, deck)
}

// EvaluateStatus loads the game's participations and derives the status the
// game should be in. It does not persist anything.
func (e *Engine) EvaluateStatus(ctx context.Context, db repository.DBTX, game *domain.Game) (domain.GameStatus, []domain.Participation, error) {
	participations, err := e.participations.ListByGame(ctx, db, game.ID)
	if err != nil {
		return game.Status, nil, err
	}
	return domain.EvaluateGameStatus(game, participations), participations, nil
}

// StartRound performs the ready->playing transition: increments hands_played,
// persists the new status, then deals the opening hands, all within the
// caller's transaction so a crash can never leave a playing game without
// cards on the table. Calling it when a hand is already dealt is rejected.
func (e *Engine) StartRound(ctx context.Context, db repository.DBTX, game *domain.Game) error {
	dealerCards, err := e.cards.CountByLocation(ctx, db, game.ID, domain.LocationDealerHand)
	if err != nil {
		return err
	}
	if dealerCards > 0 {
		return domain.ErrInvalidState("hand already dealt for this round")
	}

	participations, err := e.participations.ListByGame(ctx, db, game.ID)
	if err != nil {
		return err
	}

	game.Status = domain.GamePlaying
	game.HandsPlayed++
	if err := e.games.UpdateState(ctx, db, game); err != nil {
		return err
	}

	deck, err := e.cards.ListDeck(ctx, db, game.ID)
	if err != nil {
		return err
	}

	dealt, err := DealInitialHands(deck, participations, game.ID)
	if err != nil {
		return err
	}
	for i := range dealt {
		if err := e.cards.Move(ctx, db, &dealt[i]); err != nil {
			return err
		}
	}

	active := 0
	for _, p := range participations {
		if p.IsActive() {
			active++
		}
	}
	if err := e.outbox.Insert(ctx, db, domain.NewRoundStartedEvent(game, active)); err != nil {
		return err
	}

	e.logger.Info("round started",
		"game_id", game.ID, "hands_played", game.HandsPlayed,
		"active_seats", active, "cards_dealt", len(dealt))

	e.checkNaturals(game, dealt)
	return nil
}

// checkNaturals runs each freshly dealt hand through the scorer. With the
// default Scorer this is a structural pass only; no outcome is recorded.
func (e *Engine) checkNaturals(game *domain.Game, dealt []domain.GameCard) {
	hands := make(map[uuid.UUID][]domain.GameCard)
	for _, c := range dealt {
		if c.HolderID != nil {
			hands[*c.HolderID] = append(hands[*c.HolderID], c)
		}
	}

	for holder, hand := range hands {
		if _, err := e.scorer.ScoreHand(hand); err != nil {
			if errors.Is(err, ErrScoringNotImplemented) {
				e.logger.Debug("naturals check skipped", "game_id", game.ID)
				return
			}
			e.logger.Error("score hand", "game_id", game.ID, "holder_id", holder, "error", err)
		}
	}
}
