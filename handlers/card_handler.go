package handlers

import (
	"context"
	"net/http"
	"time"

	"kriyaConnectAPI/internal/types/session"
	"kriyaConnectAPI/middleware"
	"kriyaConnectAPI/services"
)

type CardHandler struct {
	cardService *services.CardService
	userService *services.UserService
}

func NewCardHandler(cardService *services.CardService, userService *services.UserService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		userService: userService,
	}
}

// GetIDCard renders the caller's printable membership card, QR code included.
func (h *CardHandler) GetIDCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	idCard, err := h.cardService.GenerateIDCard(ctx, session.FromUser(u), u.CreatedAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, idCard)
}
