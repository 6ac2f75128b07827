package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"kriyaConnectAPI/internal/challenge"
	"kriyaConnectAPI/middleware"
	"kriyaConnectAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	progressService  *services.ProgressService
	userService      *services.UserService
}

func NewChallengeHandler(challengeService *services.ChallengeService, progressService *services.ProgressService, userService *services.UserService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		progressService:  progressService,
		userService:      userService,
	}
}

func (h *ChallengeHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	var req challenge.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	def, err := h.challengeService.CreateChallenge(ctx, sess, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, def)
}

func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	defs, err := h.challengeService.ListChallenges(ctx, sess)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, defs)
}

func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	challengeID := mux.Vars(r)["challengeId"]
	def, err := h.challengeService.GetChallenge(ctx, challengeID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, def)
}

// CompleteChallenge records today's self-service completion and returns the
// streak, coins earned and level for the result screen.
func (h *ChallengeHandler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	challengeID := mux.Vars(r)["challengeId"]
	outcome, err := h.progressService.CompleteChallenge(ctx, sess, challengeID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	if !outcome.AlreadyDone {
		middleware.ObserveCompletion(challengeID, outcome.CoinsEarned)
	}

	respondWithJSON(w, http.StatusOK, outcome)
}

func (h *ChallengeHandler) GetUserProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	rec, err := h.progressService.GetUserProgress(ctx, sess)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}
