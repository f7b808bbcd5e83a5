package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/go-playground/validator/v10"

	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
)

func newTestHandler(pred *MockPredictionService, queue *MockRetrainQueue) *Handler {
	return &Handler{
		prediction: pred,
		retrainer:  queue,
		logger:     zap.NewNop().Sugar(),
		validator:  validator.New(),
		modelPath:  "test_model.json",
	}
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"player1":"Sinner","player2":"Alcaraz","surface":"hard","grand_slam":true}`,
			mockFunc: func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
				return &models.PredictionResult{
					P1WinProb:       64.2,
					P2WinProb:       35.8,
					PredictedWinner: "Jannik Sinner",
				}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid JSON",
			body:           `{"player1":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Player",
			body:           `{"player1":"Sinner","surface":"hard"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Surface",
			body:           `{"player1":"Sinner","player2":"Alcaraz","surface":"carpet"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Player Not Found",
			body: `{"player1":"Nobody","player2":"Alcaraz","surface":"clay"}`,
			mockFunc: func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
				return nil, directory.ErrPlayerNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Model Not Loaded",
			body: `{"player1":"Sinner","player2":"Alcaraz","surface":"grass"}`,
			mockFunc: func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
				return nil, model.ErrNotTrained
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "Schema Mismatch",
			body: `{"player1":"Sinner","player2":"Alcaraz","surface":"hard"}`,
			mockFunc: func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
				return nil, model.ErrSchemaMismatch
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&MockPredictionService{PredictMatchFunc: tt.mockFunc}, nil)

			req := httptest.NewRequest("POST", "/api/v1/predict", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Predict(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestPredictPassesRequestThrough(t *testing.T) {
	var gotP1, gotP2, gotSurface string
	var gotSlam, gotMasters bool
	h := newTestHandler(&MockPredictionService{
		PredictMatchFunc: func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
			gotP1, gotP2, gotSurface = p1, p2, surface
			gotSlam, gotMasters = grandSlam, masters
			return &models.PredictionResult{}, nil
		},
	}, nil)

	body := `{"player1":"Ruud","player2":"Zverev","surface":"clay","masters":true}`
	req := httptest.NewRequest("POST", "/api/v1/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Predict(w, req)

	if gotP1 != "Ruud" || gotP2 != "Zverev" || gotSurface != "clay" {
		t.Errorf("service got (%q, %q, %q)", gotP1, gotP2, gotSurface)
	}
	if gotSlam || !gotMasters {
		t.Errorf("flags = slam:%v masters:%v, want slam:false masters:true", gotSlam, gotMasters)
	}
}

func TestPredictResponseBody(t *testing.T) {
	h := newTestHandler(&MockPredictionService{
		PredictMatchFunc: func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
			return &models.PredictionResult{
				P1WinProb:       70,
				P2WinProb:       30,
				PredictedWinner: "Carlos Alcaraz",
				TournamentType:  "Regular",
			}, nil
		},
	}, nil)

	body := `{"player1":"Alcaraz","player2":"Rune","surface":"hard"}`
	req := httptest.NewRequest("POST", "/api/v1/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Predict(w, req)

	var result models.PredictionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.PredictedWinner != "Carlos Alcaraz" || result.P1WinProb != 70 {
		t.Errorf("result = %+v", result)
	}
}
