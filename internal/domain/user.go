package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the authentication principal. Cash funds participations; it is
// debited on join and topped up via the charge endpoint.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Cash         int64     `json:"cash"`
	CreatedAt    time.Time `json:"created_at"`
}
