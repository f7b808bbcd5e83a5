package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sportstat/tennis-api/internal/logic"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
	"github.com/sportstat/tennis-api/internal/worker"
)

// Retrain handles POST /api/v1/admin/retrain
// @Summary Trigger Model Retrain
// @Description Queues a background retrain; the new model is swapped in on success
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body models.RetrainRequest false "Options"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 409 {object} map[string]string "Retrain Already Queued"
// @Router /admin/retrain [post]
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.RetrainRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := h.validator.Struct(&req); err != nil {
			h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}
	}

	kind := model.Kind(req.Kind)
	if kind == "" {
		kind = model.KindRandomForest
	}

	job := worker.Job{Params: logic.TrainingParams{
		Years:      req.Years,
		Kind:       kind,
		BundlePath: h.modelPath,
	}}
	if !h.retrainer.Enqueue(job) {
		h.errorResponse(w, http.StatusConflict, "A retrain is already queued")
		return
	}

	h.logger.Infow("Retrain queued", "kind", kind, "years", req.Years)
	h.jsonResponse(w, http.StatusAccepted, map[string]string{
		"status": "queued",
		"kind":   string(kind),
	})
}
