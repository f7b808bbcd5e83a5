package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
)

// Predict handles POST /api/v1/predict
// @Summary Predict Match Outcome
// @Description Returns win probabilities and an explanation for a head-to-head
// @Tags Prediction
// @Accept json
// @Produce json
// @Param body body models.PredictRequest true "Matchup"
// @Success 200 {object} models.PredictionResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Player Not Found"
// @Failure 503 {object} map[string]string "Model Not Loaded"
// @Router /predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := h.prediction.PredictMatch(r.Context(),
		req.Player1, req.Player2, req.Surface, req.GrandSlam, req.Masters)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrPlayerNotFound):
			h.errorResponse(w, http.StatusNotFound, err.Error())
		case errors.Is(err, model.ErrNotTrained):
			h.errorResponse(w, http.StatusServiceUnavailable, "Model not loaded")
		default:
			h.logger.Errorw("Prediction failed",
				"error", err, "p1", req.Player1, "p2", req.Player2)
			h.errorResponse(w, http.StatusInternalServerError, "Prediction failed")
		}
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}
