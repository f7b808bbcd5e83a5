package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/worker"
)

func TestRetrain(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		enqueueFunc    func(job worker.Job) bool
		expectedStatus int
		expectedKind   model.Kind
	}{
		{
			name:           "Default Kind",
			body:           "",
			expectedStatus: http.StatusAccepted,
			expectedKind:   model.KindRandomForest,
		},
		{
			name:           "Explicit Kind",
			body:           `{"kind":"gradient_boosting","years":[2023,2024]}`,
			expectedStatus: http.StatusAccepted,
			expectedKind:   model.KindGradientBoosting,
		},
		{
			name:           "Invalid Kind",
			body:           `{"kind":"xgboost"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Year",
			body:           `{"years":[1890]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Already Queued",
			body:           `{"kind":"logistic"}`,
			enqueueFunc:    func(worker.Job) bool { return false },
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockRetrainQueue{EnqueueFunc: tt.enqueueFunc}
			h := newTestHandler(&MockPredictionService{}, queue)

			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest("POST", "/api/v1/admin/retrain", nil)
			} else {
				req = httptest.NewRequest("POST", "/api/v1/admin/retrain", strings.NewReader(tt.body))
			}
			w := httptest.NewRecorder()

			h.Retrain(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %v, want %v (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus == http.StatusAccepted {
				if len(queue.Jobs) != 1 {
					t.Fatalf("queued %d jobs, want 1", len(queue.Jobs))
				}
				job := queue.Jobs[0]
				if job.Params.Kind != tt.expectedKind {
					t.Errorf("kind = %v, want %v", job.Params.Kind, tt.expectedKind)
				}
				if job.Params.BundlePath != "test_model.json" {
					t.Errorf("bundle path = %q", job.Params.BundlePath)
				}
			}
		})
	}
}

func TestReadyReflectsService(t *testing.T) {
	tests := []struct {
		name           string
		ready          bool
		players        []string
		expectedStatus int
	}{
		{
			name:           "Ready",
			ready:          true,
			players:        []string{"Jannik Sinner"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No Model",
			ready:          false,
			players:        []string{"Jannik Sinner"},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "Empty Directory",
			ready:          true,
			players:        nil,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&MockPredictionService{
				ReadyFunc:       func() bool { return tt.ready },
				PlayerNamesFunc: func() []string { return tt.players },
			}, nil)

			req := httptest.NewRequest("GET", "/ready", nil)
			w := httptest.NewRecorder()
			h.Ready(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}
