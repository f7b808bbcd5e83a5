package logic

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/explain"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
)

func trainedModel(t *testing.T) *model.OutcomeModel {
	t.Helper()

	// Separable toy set: better-ranked player 1 wins
	var X []models.FeatureVector
	var y []int
	for i := 0; i < 200; i++ {
		gap := float64((i*13)%81 - 40)
		if gap == 0 {
			gap = 1
		}
		label := 0
		if gap < 0 {
			label = 1
		}
		X = append(X, models.FeatureVector{
			Names: models.FeatureNames,
			Values: []float64{
				50 + gap/2, 50 - gap/2, gap,
				25, 25, 0, 185, 185, 0,
				1, 0, 0, 0, 0,
			},
		})
		y = append(y, label)
	}

	m, err := model.New(model.KindLogistic)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if _, err := m.Train(X, y); err != nil {
		t.Fatalf("train: %v", err)
	}
	return m
}

func testSnapshot() *directory.Snapshot {
	return directory.Build([]models.CleanedMatch{
		{
			WinnerName: "Jannik Sinner", WinnerRank: 1, WinnerAge: 23, WinnerHeight: 191, WinnerHand: "R",
			LoserName: "Daniil Medvedev", LoserRank: 5, LoserAge: 28, LoserHeight: 198, LoserHand: "R",
		},
		{
			WinnerName: "Carlos Alcaraz", WinnerRank: 3, WinnerAge: 21, WinnerHeight: 183, WinnerHand: "R",
			LoserName: "Novak Djokovic", LoserRank: 7, LoserAge: 37, LoserHeight: 188, LoserHand: "R",
		},
	})
}

func TestPredictMatchEndToEnd(t *testing.T) {
	svc := NewPredictionService(testSnapshot(), trainedModel(t), explain.DefaultThresholds(), zap.NewNop())

	result, err := svc.PredictMatch(context.Background(), "Sinner", "Djokovic", "hard", true, false)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if result.Player1.Name != "Jannik Sinner" || result.Player2.Name != "Novak Djokovic" {
		t.Errorf("players = %q vs %q", result.Player1.Name, result.Player2.Name)
	}
	if math.Abs(result.P1WinProb+result.P2WinProb-100) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 100", result.P1WinProb+result.P2WinProb)
	}
	if result.P1WinProb <= 50 {
		t.Errorf("p1 win prob = %v, expected the better-ranked player to be favored", result.P1WinProb)
	}
	if result.PredictedWinner != "Jannik Sinner" {
		t.Errorf("winner = %q", result.PredictedWinner)
	}
	if result.TournamentType != "Grand Slam" {
		t.Errorf("tournament type = %q", result.TournamentType)
	}
	if len(result.Explanation) < 3 {
		t.Errorf("explanation too short: %v", result.Explanation)
	}
}

func TestPredictMatchUnknownPlayer(t *testing.T) {
	svc := NewPredictionService(testSnapshot(), trainedModel(t), explain.DefaultThresholds(), zap.NewNop())

	_, err := svc.PredictMatch(context.Background(), "Sinner", "Roger Federer", "hard", false, false)
	if !errors.Is(err, directory.ErrPlayerNotFound) {
		t.Fatalf("err = %v, want ErrPlayerNotFound", err)
	}
}

func TestPredictMatchWithoutModel(t *testing.T) {
	svc := NewPredictionService(testSnapshot(), nil, explain.DefaultThresholds(), zap.NewNop())

	if svc.Ready() {
		t.Error("service reports ready without a model")
	}
	_, err := svc.PredictMatch(context.Background(), "Sinner", "Alcaraz", "clay", false, false)
	if !errors.Is(err, model.ErrNotTrained) {
		t.Fatalf("err = %v, want ErrNotTrained", err)
	}
}

func TestSwapModelTakesEffect(t *testing.T) {
	svc := NewPredictionService(testSnapshot(), nil, explain.DefaultThresholds(), zap.NewNop())

	svc.SwapModel(trainedModel(t))
	if !svc.Ready() {
		t.Fatal("service not ready after model swap")
	}
	if _, err := svc.PredictMatch(context.Background(), "Sinner", "Alcaraz", "clay", false, true); err != nil {
		t.Fatalf("predict after swap: %v", err)
	}
}

func TestPlayerCountAndLookup(t *testing.T) {
	svc := NewPredictionService(testSnapshot(), nil, explain.DefaultThresholds(), zap.NewNop())

	if got := svc.PlayerCount(); got != 4 {
		t.Errorf("player count = %d, want 4", got)
	}
	p, err := svc.LookupPlayer(context.Background(), "medvedev")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.Name != "Daniil Medvedev" {
		t.Errorf("name = %q", p.Name)
	}
}
