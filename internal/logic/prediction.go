package logic

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/explain"
	"github.com/sportstat/tennis-api/internal/features"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
)

var (
	predictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_predictions_total",
		Help: "Total number of successful match predictions",
	})

	predictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tennis_predictions_failed_total",
		Help: "Failed predictions by reason",
	}, []string{"reason"})
)

// predictionService holds the directory snapshot and outcome model
// behind atomic pointers: predictions only read, the retrain worker
// swaps in whole replacements, so no locking is needed.
type predictionService struct {
	dir        atomic.Pointer[directory.Snapshot]
	mdl        atomic.Pointer[model.OutcomeModel]
	thresholds explain.Thresholds
	logger     *zap.SugaredLogger
}

func NewPredictionService(snap *directory.Snapshot, mdl *model.OutcomeModel, th explain.Thresholds, logger *zap.Logger) PredictionService {
	s := &predictionService{
		thresholds: th,
		logger:     logger.Sugar(),
	}
	if snap != nil {
		s.dir.Store(snap)
	}
	if mdl != nil {
		s.mdl.Store(mdl)
	}
	return s
}

// SwapModel atomically replaces the in-memory model. Readers either see
// the old model or the new one, never a half-trained state.
func (s *predictionService) SwapModel(m *model.OutcomeModel) {
	s.mdl.Store(m)
}

// SwapDirectory atomically replaces the directory snapshot.
func (s *predictionService) SwapDirectory(snap *directory.Snapshot) {
	s.dir.Store(snap)
}

// Ready reports whether both the model and the directory are loaded.
func (s *predictionService) Ready() bool {
	return s.mdl.Load() != nil && s.dir.Load() != nil
}

// PlayerCount reports the size of the current snapshot.
func (s *predictionService) PlayerCount() int {
	if snap := s.dir.Load(); snap != nil {
		return snap.Len()
	}
	return 0
}

// PlayerNames returns the sorted names in the current snapshot.
func (s *predictionService) PlayerNames() []string {
	if snap := s.dir.Load(); snap != nil {
		return snap.Names()
	}
	return nil
}

// LookupPlayer resolves a name against the current snapshot.
func (s *predictionService) LookupPlayer(ctx context.Context, name string) (models.PlayerProfile, error) {
	snap := s.dir.Load()
	if snap == nil {
		return models.PlayerProfile{}, fmt.Errorf("player directory not loaded")
	}
	return snap.Lookup(name)
}

// PredictMatch runs the full inference path: directory lookups, the
// single-pair feature vector with player 1 fixed to the first name,
// model probabilities and the rule-based explanation.
func (s *predictionService) PredictMatch(ctx context.Context, p1Name, p2Name, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
	snap := s.dir.Load()
	mdl := s.mdl.Load()
	if snap == nil || mdl == nil {
		predictionsFailed.WithLabelValues("not_ready").Inc()
		return nil, model.ErrNotTrained
	}

	p1, err := snap.Lookup(p1Name)
	if err != nil {
		predictionsFailed.WithLabelValues("player_not_found").Inc()
		return nil, err
	}
	p2, err := snap.Lookup(p2Name)
	if err != nil {
		predictionsFailed.WithLabelValues("player_not_found").Inc()
		return nil, err
	}

	fv := features.BuildPair(p1, p2, features.Context{
		Surface:   surface,
		GrandSlam: grandSlam,
		Masters:   masters,
	})

	_, p1Prob, err := mdl.PredictProba(fv)
	if err != nil {
		// Schema mismatch here means the bundle predates the current
		// feature code; abort rather than guess
		predictionsFailed.WithLabelValues("schema_mismatch").Inc()
		return nil, err
	}
	predictionsTotal.Inc()

	p1Pct := p1Prob * 100
	p2Pct := 100 - p1Pct

	winner := p1.Name
	if p1Pct <= 50 {
		winner = p2.Name
	}

	result := &models.PredictionResult{
		Player1:         p1,
		Player2:         p2,
		P1WinProb:       p1Pct,
		P2WinProb:       p2Pct,
		PredictedWinner: winner,
		Surface:         strings.ToLower(surface),
		TournamentType:  tournamentType(grandSlam, masters),
		Explanation:     explain.Explain(p1, p2, fv, p1Pct, surface, s.thresholds),
	}

	s.logger.Infow("Predicted match",
		"p1", p1.Name, "p2", p2.Name,
		"surface", result.Surface,
		"p1_win_prob", result.P1WinProb,
		"winner", result.PredictedWinner,
	)
	return result, nil
}

func tournamentType(grandSlam, masters bool) string {
	switch {
	case grandSlam:
		return "Grand Slam"
	case masters:
		return "Masters 1000"
	default:
		return "Regular"
	}
}
