package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideahub/ideahub-api/internal/service"
)

// SourceHandler handles HTTP requests for the source reference data.
type SourceHandler struct {
	service *service.SourceService
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(svc *service.SourceService) *SourceHandler {
	return &SourceHandler{service: svc}
}

// HandleListSources handles GET /api/sources requests.
func (h *SourceHandler) HandleListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.service.ListSources(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sources": sources})
}

// HandleGetSource handles GET /api/sources/{sourceId} requests.
func (h *SourceHandler) HandleGetSource(w http.ResponseWriter, r *http.Request) {
	source, err := h.service.GetSource(r.Context(), chi.URLParam(r, "sourceId"))
	if err != nil {
		if errors.Is(err, service.ErrSourceNotFound) {
			writeJSON(w, http.StatusNotFound, msgResponse("Source not found."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, msgResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"source": source})
}
