package handler

import (
	"net/http"

	"github.com/cardroom/platform/internal/domain"
	"github.com/cardroom/platform/internal/repository"
)

// UserHandler handles current-user endpoints.
type UserHandler struct {
	users repository.UserRepository
	db    repository.DBTX
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users repository.UserRepository, db repository.DBTX) *UserHandler {
	return &UserHandler{users: users, db: db}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	user, err := h.users.FindByID(r.Context(), h.db, userID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find user", err))
		return
	}
	if user == nil {
		RespondError(w, domain.ErrNotFound("user", userID.String()))
		return
	}
	RespondJSON(w, http.StatusOK, user)
}

// chargeRequest is the shape of POST /users/charge.
type chargeRequest struct {
	Amount int64 `json:"amount"`
}

// Charge handles POST /users/charge: adds cash to the user's balance.
func (h *UserHandler) Charge(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req chargeRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if err := domain.ValidatePositiveAmount(req.Amount); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	user, err := h.users.AddCash(r.Context(), h.db, userID, req.Amount)
	if err != nil {
		RespondError(w, domain.ErrInternal("charge user", err))
		return
	}
	if user == nil {
		RespondError(w, domain.ErrNotFound("user", userID.String()))
		return
	}
	RespondJSON(w, http.StatusOK, user)
}
