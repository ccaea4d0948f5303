package handler

import (
	"net/http"

	"github.com/cardroom/platform/internal/domain"
	"github.com/cardroom/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ParticipationHandler handles seat endpoints: join, quit, bet, hand.
type ParticipationHandler struct {
	svc *service.ParticipationService
}

// NewParticipationHandler creates a new ParticipationHandler.
func NewParticipationHandler(svc *service.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{svc: svc}
}

// joinRequest is the shape of POST /participations.
type joinRequest struct {
	GameID uuid.UUID `json:"game_id"`
	Cash   int64     `json:"cash"`
}

// Join handles POST /participations.
func (h *ParticipationHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req joinRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	participation, err := h.svc.Join(r.Context(), userID, req.GameID, req.Cash)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, participation)
}

// ListMine handles GET /participations.
func (h *ParticipationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	participations, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, participations)
}

// Get handles GET /participations/{id}.
func (h *ParticipationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, participationID, err := requestIDs(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	participation, err := h.svc.GetParticipation(r.Context(), userID, participationID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, participation)
}

// Quit handles DELETE /participations/{id}.
func (h *ParticipationHandler) Quit(w http.ResponseWriter, r *http.Request) {
	userID, participationID, err := requestIDs(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.svc.Quit(r.Context(), userID, participationID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// betRequest is the shape of POST /participations/{id}/bet.
type betRequest struct {
	Bet int64 `json:"bet"`
}

// Bet handles POST /participations/{id}/bet.
func (h *ParticipationHandler) Bet(w http.ResponseWriter, r *http.Request) {
	userID, participationID, err := requestIDs(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req betRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	participation, err := h.svc.PlaceBet(r.Context(), userID, participationID, req.Bet)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, participation)
}

// GetHand handles GET /participations/{id}/hand.
func (h *ParticipationHandler) GetHand(w http.ResponseWriter, r *http.Request) {
	userID, participationID, err := requestIDs(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	hand, err := h.svc.GetHand(r.Context(), userID, participationID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, hand)
}

func requestIDs(r *http.Request) (userID, participationID uuid.UUID, err error) {
	userID, err = userIDFromContext(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	participationID, err = uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrValidation("invalid participation id")
	}
	return userID, participationID, nil
}
