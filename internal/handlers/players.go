package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportstat/tennis-api/internal/directory"
)

// ListPlayers handles GET /api/v1/players
// @Summary List Known Players
// @Tags Players
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	names := h.prediction.PlayerNames()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":   len(names),
		"players": names,
	})
}

// GetPlayer handles GET /api/v1/players/{name}
// @Summary Get Player Profile
// @Description Exact match first, then case-insensitive substring
// @Tags Players
// @Produce json
// @Param name path string true "Player name or fragment"
// @Success 200 {object} models.PlayerProfile
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{name} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "Name is required")
		return
	}

	profile, err := h.prediction.LookupPlayer(r.Context(), name)
	if err != nil {
		if errors.Is(err, directory.ErrPlayerNotFound) {
			h.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Errorw("Player lookup failed", "error", err, "name", name)
		h.errorResponse(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, profile)
}
