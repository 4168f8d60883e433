package handler

import (
	"errors"
	"net/http"

	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/service"
)

// AuthHandler handles HTTP requests for signup and login.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignup handles POST /api/users/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, msgResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// HandleLogin handles POST /api/users/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, msgResponse("Invalid username or password"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
