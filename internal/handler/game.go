package handler

import (
	"net/http"

	"github.com/cardroom/platform/internal/domain"
	"github.com/cardroom/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GameHandler handles game endpoints.
type GameHandler struct {
	svc *service.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(svc *service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// createGameRequest is the shape of POST /games.
type createGameRequest struct {
	Variant domain.GameVariant `json:"variant"`
}

// CreateGame handles POST /games.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	game, err := h.svc.CreateGame(r.Context(), req.Variant)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, game)
}

// ListGames handles GET /games.
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.ListGames(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, games)
}

// GetGame handles GET /games/{id}.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game id"))
		return
	}

	game, err := h.svc.GetGame(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, game)
}
