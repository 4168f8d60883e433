package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideahub/ideahub-api/internal/middleware"
	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/service"
)

// ReactionHandler handles HTTP requests for reacting to ideas and listing
// seen ideas.
type ReactionHandler struct {
	service *service.ReactionService
}

// NewReactionHandler creates a new ReactionHandler.
func NewReactionHandler(svc *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: svc}
}

// HandleReact handles POST /api/ideas/{ideaId}/react requests.
func (h *ReactionHandler) HandleReact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	var req model.ReactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ideaID := chi.URLParam(r, "ideaId")

	var reaction model.Reaction
	var err error
	if req.Type == "like" {
		reaction, err = h.service.LikeIdea(r.Context(), userID, ideaID, req.Agreement)
	} else {
		reaction, err = h.service.DislikeIdea(r.Context(), userID, ideaID)
	}
	if err != nil {
		if errors.Is(err, service.ErrReactionNotSaved) {
			writeJSON(w, http.StatusBadRequest, msgResponse("Reaction could not be saved."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reaction": reaction})
}

// HandleViewedIdeas handles GET /api/ideas/viewed requests.
func (h *ReactionHandler) HandleViewedIdeas(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	ideas, err := h.service.SeenIdeas(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas})
}

// HandleViewedIdeasWithRelationships handles
// GET /api/ideas/viewed-with-relationships requests: every seen idea with
// aggregate reactions and the caller's own reaction attached.
func (h *ReactionHandler) HandleViewedIdeasWithRelationships(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	ideas, err := h.service.SeenIdeasWithReactions(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas})
}
