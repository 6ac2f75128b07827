package handlers

import (
	"context"
	"net/http"
	"time"

	"kriyaConnectAPI/services"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
	userService        *services.UserService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService, userService *services.UserService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		userService:        userService,
	}
}

// GetLeaderboards returns the weekly and all-time boards for the caller's
// teacher group, including the caller's own position in each.
func (h *LeaderboardHandler) GetLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	resp, err := h.leaderboardService.GetLeaderboards(ctx, sess)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *LeaderboardHandler) GetMemberLevel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	level, err := h.leaderboardService.GetMemberLevel(ctx, sess)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, level)
}
