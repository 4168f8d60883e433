package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideahub/ideahub-api/internal/middleware"
	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/service"
)

const msgNotAuthorized = "You are not authorized to view this resource"

// UserHandler handles HTTP requests for user info and profile edits.
type UserHandler struct {
	service *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleGetUser handles GET /api/users/{userId} requests. Users can only
// view their own record.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, msgResponse("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// HandleEditUser handles PATCH /api/users/{userId} requests. The current
// password gates the edit; username, email and password update
// independently.
func (h *UserHandler) HandleEditUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r)
	if !ok {
		return
	}

	var req model.EditProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.EditProfile(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			writeJSON(w, http.StatusUnauthorized, msgResponse("Invalid password"))
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, msgResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// requireSelf checks that the authenticated user is the {userId} in the
// path, writing 401/403 otherwise.
func requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("Missing Authorization Header"))
		return "", false
	}

	userID := chi.URLParam(r, "userId")
	if claims.UserID != userID {
		writeJSON(w, http.StatusForbidden, msgResponse(msgNotAuthorized))
		return "", false
	}

	return userID, true
}
