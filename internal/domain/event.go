package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventUserRegistered      EventType = "cardroom.user.registered"
	EventGameCreated         EventType = "cardroom.game.created"
	EventGameFinished        EventType = "cardroom.game.finished"
	EventParticipationJoined EventType = "cardroom.participation.joined"
	EventParticipationQuit   EventType = "cardroom.participation.quit"
	EventBetPlaced           EventType = "cardroom.bet.placed"
	EventRoundStarted        EventType = "cardroom.round.started"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateUser AggregateType = "user"
	AggregateGame AggregateType = "game"
)

// OutboxDraft is the payload written to the event_outbox table within the
// same transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func newDraft(aggType AggregateType, aggID string, eventType EventType, payload any) OutboxDraft {
	body, _ := json.Marshal(payload)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: aggType,
		AggregateID:   aggID,
		EventType:     eventType,
		Payload:       body,
		OccurredAt:    time.Now().UTC(),
	}
}

// NewGameCreatedEvent records a freshly created game and its variant.
func NewGameCreatedEvent(game *Game) OutboxDraft {
	return newDraft(AggregateGame, game.ID.String(), EventGameCreated, map[string]any{
		"game_id": game.ID,
		"variant": game.Variant,
	})
}

// NewGameFinishedEvent records a game reaching its terminal status.
func NewGameFinishedEvent(game *Game) OutboxDraft {
	return newDraft(AggregateGame, game.ID.String(), EventGameFinished, map[string]any{
		"game_id":      game.ID,
		"hands_played": game.HandsPlayed,
	})
}

// NewParticipationJoinedEvent records a user taking a seat.
func NewParticipationJoinedEvent(p *Participation) OutboxDraft {
	return newDraft(AggregateGame, p.GameID.String(), EventParticipationJoined, map[string]any{
		"participation_id": p.ID,
		"user_id":          p.UserID,
		"position":         p.Position,
		"cash":             p.Cash,
	})
}

// NewParticipationQuitEvent records a seat being abandoned.
func NewParticipationQuitEvent(p *Participation) OutboxDraft {
	return newDraft(AggregateGame, p.GameID.String(), EventParticipationQuit, map[string]any{
		"participation_id": p.ID,
		"user_id":          p.UserID,
	})
}

// NewBetPlacedEvent records a wager for the current hand.
func NewBetPlacedEvent(p *Participation) OutboxDraft {
	return newDraft(AggregateGame, p.GameID.String(), EventBetPlaced, map[string]any{
		"participation_id": p.ID,
		"bet":              p.Bet,
	})
}

// NewRoundStartedEvent records a ready->playing transition with its deal.
func NewRoundStartedEvent(game *Game, activeSeats int) OutboxDraft {
	return newDraft(AggregateGame, game.ID.String(), EventRoundStarted, map[string]any{
		"game_id":      game.ID,
		"hands_played": game.HandsPlayed,
		"active_seats": activeSeats,
	})
}

// NewUserRegisteredEvent records a new account.
func NewUserRegisteredEvent(u *User) OutboxDraft {
	return newDraft(AggregateUser, u.ID.String(), EventUserRegistered, map[string]any{
		"user_id": u.ID,
		"email":   u.Email,
	})
}
