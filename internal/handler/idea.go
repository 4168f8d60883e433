package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideahub/ideahub-api/internal/middleware"
	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/service"
)

// IdeaHandler handles HTTP requests for idea CRUD, search and the
// recommendation endpoints.
type IdeaHandler struct {
	ideas     *service.IdeaService
	recommend *service.RecommendService
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(ideas *service.IdeaService, recommend *service.RecommendService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas, recommend: recommend}
}

// HandlePostIdea handles POST /api/ideas/ requests.
func (h *IdeaHandler) HandlePostIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	var req model.PostIdeaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	idea, err := h.ideas.AddIdea(r.Context(), userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"idea": idea})
}

// HandleRandomIdea handles GET /api/ideas/random requests. No auth needed.
func (h *IdeaHandler) HandleRandomIdea(w http.ResponseWriter, r *http.Request) {
	idea, err := h.ideas.RandomIdea(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoIdeas) {
			writeJSON(w, http.StatusNotFound, msgResponse("There are no ideas yet."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"idea": idea})
}

// HandleRandomUnseenIdea handles GET /api/ideas/random-unseen requests.
func (h *IdeaHandler) HandleRandomUnseenIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	idea, err := h.ideas.RandomUnseenIdea(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoUnseenIdeas) {
			writeJSON(w, http.StatusNotFound, msgResponse("We are all out of ideas you haven't seen before."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"idea": idea})
}

// HandlePopularIdea handles GET /api/ideas/popular requests.
func (h *IdeaHandler) HandlePopularIdea(w http.ResponseWriter, r *http.Request) {
	h.recommendIdea(w, r, h.recommend.PopularUnseenIdea,
		"We are all out of ideas you haven't seen before.")
}

// HandleAgreeableIdea handles GET /api/ideas/agreeable requests.
func (h *IdeaHandler) HandleAgreeableIdea(w http.ResponseWriter, r *http.Request) {
	h.recommendIdea(w, r, h.recommend.AgreeableIdea,
		"We are all out of nice ideas.")
}

// HandleDisagreeableIdea handles GET /api/ideas/disagreeable requests.
func (h *IdeaHandler) HandleDisagreeableIdea(w http.ResponseWriter, r *http.Request) {
	h.recommendIdea(w, r, h.recommend.DisagreeableIdea,
		"We are all out of ideas for you to disagree with.")
}

// HandleSearchIdeas handles GET /api/ideas/search?q= requests.
func (h *IdeaHandler) HandleSearchIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.ideas.SearchIdeas(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas})
}

// HandleIdeaDetails handles GET /api/ideas/{ideaId} requests with the
// optional with-reactions and with-user-reaction query flags.
func (h *IdeaHandler) HandleIdeaDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	ideaID := chi.URLParam(r, "ideaId")
	withReactions := r.URL.Query().Get("with-reactions") == "true"
	withUserReaction := r.URL.Query().Get("with-user-reaction") == "true"

	if !withUserReaction {
		userID = ""
	} else {
		withReactions = true
	}

	idea, err := h.ideas.GetIdea(r.Context(), ideaID, withReactions, userID)
	if err != nil {
		if errors.Is(err, service.ErrIdeaNotFound) {
			writeJSON(w, http.StatusNotFound, msgResponse("Idea not found."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"idea": idea})
}

// HandleIdeaReactions handles GET /api/ideas/{ideaId}/reactions requests,
// returning only the reaction aggregates and the caller's own reaction.
func (h *IdeaHandler) HandleIdeaReactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	idea, err := h.ideas.GetIdea(r.Context(), chi.URLParam(r, "ideaId"), true, userID)
	if err != nil {
		if errors.Is(err, service.ErrIdeaNotFound) {
			writeJSON(w, http.StatusNotFound, msgResponse("Reactions not found."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	summary := model.ReactionSummary{
		UserReaction:  idea.UserReaction,
		UserAgreement: idea.UserAgreement,
	}
	if idea.AllReactions != nil {
		summary.AllReactions = *idea.AllReactions
	}
	if idea.AllAgreement != nil {
		summary.AllAgreement = *idea.AllAgreement
	}

	writeJSON(w, http.StatusOK, map[string]any{"reactions": summary})
}

// HandleDeleteIdea handles DELETE /api/ideas/{ideaId} requests. Only the
// poster can delete an idea.
func (h *IdeaHandler) HandleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	deleted, err := h.ideas.DeleteIdea(r.Context(), chi.URLParam(r, "ideaId"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdeaNotFound):
			writeJSON(w, http.StatusNotFound, msgResponse("Idea not found."))
		case errors.Is(err, service.ErrNotIdeaOwner):
			writeJSON(w, http.StatusForbidden, msgResponse("You are not authorized to delete this idea"))
		default:
			writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

// HandlePostedIdeas handles GET /api/ideas/user/{userId} requests. Users
// can only list their own posted ideas.
func (h *IdeaHandler) HandlePostedIdeas(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r)
	if !ok {
		return
	}

	ideas, err := h.ideas.PostedIdeas(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas})
}

func (h *IdeaHandler) recommendIdea(w http.ResponseWriter, r *http.Request,
	pick func(ctx context.Context, userID string) (model.RankedIdea, error), emptyMsg string) {

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return
	}

	idea, err := pick(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoUnseenIdeas) {
			writeJSON(w, http.StatusNotFound, msgResponse(emptyMsg))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"idea": idea})
}
