package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kriyaConnectAPI/services"
)

type AttendanceHandler struct {
	progressService *services.ProgressService
	userService     *services.UserService
}

func NewAttendanceHandler(progressService *services.ProgressService, userService *services.UserService) *AttendanceHandler {
	return &AttendanceHandler{
		progressService: progressService,
		userService:     userService,
	}
}

type markAttendanceRequest struct {
	ChallengeID string   `json:"challenge_id"`
	MemberIDs   []string `json:"member_ids"`
}

// MarkGroupAttendance lets a teacher record a group session for the members
// who showed up. Per-member failures are reported in the result rows instead
// of failing the whole batch.
func (h *AttendanceHandler) MarkGroupAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	var req markAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.progressService.MarkGroupAttendance(ctx, sess, req.ChallengeID, req.MemberIDs)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"challenge_id": req.ChallengeID,
		"results":      results,
	})
}

// ListMembers returns the roster a teacher picks attendees from.
func (h *AttendanceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, ok := authSession(ctx, w, h.userService)
	if !ok {
		return
	}

	if !sess.IsTeacher() {
		respondWithError(w, http.StatusForbidden, "Only teachers can view their member roster")
		return
	}

	members, err := h.userService.ListTeacherMembers(ctx, sess.UserID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, members)
}
