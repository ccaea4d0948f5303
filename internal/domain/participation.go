package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParticipationStatus is the state of a seat. Quit is terminal.
type ParticipationStatus string

const (
	ParticipationPlaying ParticipationStatus = "playing"
	ParticipationQuit    ParticipationStatus = "quit"
)

// Participation is a user's seat at a game. Cash is the stake pool moved in
// from the user's balance on join; Bet is the wager for the current hand.
// GameID and UserID are nullable because deleting a game or user detaches
// the participation instead of deleting it.
type Participation struct {
	ID        uuid.UUID           `json:"id"`
	Position  int                 `json:"position"`
	Status    ParticipationStatus `json:"status"`
	Bet       int64               `json:"bet"`
	Cash      int64               `json:"cash"`
	CreatedAt time.Time           `json:"created_at"`
	GameID    *uuid.UUID          `json:"game_id,omitempty"`
	UserID    *uuid.UUID          `json:"user_id,omitempty"`
}

// IsActive reports whether the seat is still in the hand.
func (p *Participation) IsActive() bool {
	return p.Status == ParticipationPlaying
}

// NextPosition returns the seating position for a new joiner: max existing
// position + 1, or 0 when the table is empty. Quits do not free positions.
func NextPosition(participations []Participation) int {
	maxPos := -1
	for _, p := range participations {
		if p.Position > maxPos {
			maxPos = p.Position
		}
	}
	return maxPos + 1
}
