// Package model implements the trainable, serializable match outcome
// classifier. Three interchangeable kinds (bagged trees, gradient
// boosting, logistic regression) satisfy one capability contract:
// train, predict probabilities, expose importances, save, load.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/sportstat/tennis-api/internal/models"
)

// Kind selects the classifier variant at construction time.
type Kind string

const (
	KindRandomForest     Kind = "random_forest"
	KindGradientBoosting Kind = "gradient_boosting"
	KindLogistic         Kind = "logistic"
)

// defaultSeed makes every training run reproducible.
const defaultSeed = 42

var (
	// ErrNotTrained is returned when predict or save run before train
	// or load. Programmer error, fatal to the call.
	ErrNotTrained = errors.New("model: not trained")

	// ErrSchemaMismatch is returned when the caller's feature names or
	// order differ from those recorded at training time. The call must
	// abort; guessing column alignment silently corrupts predictions.
	ErrSchemaMismatch = errors.New("model: feature schema mismatch")
)

// classifier is the internal capability interface all kinds implement.
type classifier interface {
	fit(X [][]float64, y []float64, rng *rand.Rand)
	predictProba(x []float64) float64 // P(class 1)
	importances(numFeatures int) []float64
	clone() classifier // fresh untrained copy with the same hyperparameters
}

// OutcomeModel is the public face of one trained (or loadable) model.
type OutcomeModel struct {
	kind         Kind
	clf          classifier
	scaler       *standardScaler
	featureNames []string
	trained      bool
}

// New constructs an untrained model of the given kind.
func New(kind Kind) (*OutcomeModel, error) {
	clf, err := newClassifier(kind)
	if err != nil {
		return nil, err
	}
	return &OutcomeModel{kind: kind, clf: clf, scaler: &standardScaler{}}, nil
}

func newClassifier(kind Kind) (classifier, error) {
	switch kind {
	case KindRandomForest:
		return newForest(), nil
	case KindGradientBoosting:
		return newBoosting(), nil
	case KindLogistic:
		return newLogistic(), nil
	default:
		return nil, fmt.Errorf("model: unknown kind %q", kind)
	}
}

// Kind reports the classifier variant.
func (m *OutcomeModel) Kind() Kind { return m.kind }

// FeatureNames returns the ordered feature list recorded at training
// time, nil before training.
func (m *OutcomeModel) FeatureNames() []string { return m.featureNames }

// Train fits the scaler and classifier on the engineered features and
// returns train/test accuracy plus 5-fold cross-validation scores. The
// exact ordered feature-name list is recorded for the schema contract.
func (m *OutcomeModel) Train(X []models.FeatureVector, y []int) (*models.TrainMetrics, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("model: %d feature rows but %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return nil, errors.New("model: empty training set")
	}

	names := X[0].Names
	rows := make([][]float64, len(X))
	for i, fv := range X {
		if !sameSchema(fv.Names, names) {
			return nil, fmt.Errorf("%w: row %d differs from row 0", ErrSchemaMismatch, i)
		}
		rows[i] = fv.Values
	}
	labels := make([]float64, len(y))
	for i, v := range y {
		labels[i] = float64(v)
	}

	rng := rand.New(rand.NewSource(defaultSeed))
	trainX, testX, trainY, testY := trainTestSplit(rows, labels, 0.2, rng)

	m.scaler.fit(trainX)
	trainScaled := m.scaler.transform(trainX)
	testScaled := m.scaler.transform(testX)

	m.clf.fit(trainScaled, trainY, rng)
	m.featureNames = append([]string(nil), names...)
	m.trained = true

	metrics := &models.TrainMetrics{
		Kind:          string(m.kind),
		TrainAccuracy: accuracy(m.clf, trainScaled, trainY),
		TestAccuracy:  accuracy(m.clf, testScaled, testY),
		TrainSize:     len(trainScaled),
		TestSize:      len(testScaled),
	}

	cvScores := m.crossValidate(trainScaled, trainY, 5)
	metrics.CVMean = stat.Mean(cvScores, nil)
	metrics.CVStd = stat.StdDev(cvScores, nil)

	if imp, err := m.FeatureImportances(); err == nil {
		metrics.Importances = imp
	}

	return metrics, nil
}

// crossValidate runs k-fold CV over the scaled training set with a
// fresh classifier per fold, matching the offline evaluation done at
// training time in the source pipeline.
func (m *OutcomeModel) crossValidate(X [][]float64, y []float64, k int) []float64 {
	folds := kFoldIndices(len(X), k, rand.New(rand.NewSource(defaultSeed)))
	scores := make([]float64, 0, k)

	for f := 0; f < len(folds); f++ {
		var trainX, valX [][]float64
		var trainY, valY []float64
		for g, idxs := range folds {
			for _, i := range idxs {
				if g == f {
					valX = append(valX, X[i])
					valY = append(valY, y[i])
				} else {
					trainX = append(trainX, X[i])
					trainY = append(trainY, y[i])
				}
			}
		}
		if len(valX) == 0 || len(trainX) == 0 {
			continue
		}
		clf := m.clf.clone()
		clf.fit(trainX, trainY, rand.New(rand.NewSource(defaultSeed+int64(f)+1)))
		scores = append(scores, accuracy(clf, valX, valY))
	}
	return scores
}

// PredictProba returns (P(class 0), P(class 1)) for one feature vector.
// The vector's names must match the recorded training schema exactly,
// including order.
func (m *OutcomeModel) PredictProba(fv models.FeatureVector) (p0, p1 float64, err error) {
	if !m.trained {
		return 0, 0, ErrNotTrained
	}
	if !sameSchema(fv.Names, m.featureNames) {
		return 0, 0, fmt.Errorf("%w: got %v, trained on %v", ErrSchemaMismatch, fv.Names, m.featureNames)
	}

	scaled := m.scaler.transformRow(fv.Values)
	p1 = clamp01(m.clf.predictProba(scaled))
	return 1 - p1, p1, nil
}

// FeatureImportances maps feature names to normalized importances.
func (m *OutcomeModel) FeatureImportances() (map[string]float64, error) {
	if !m.trained {
		return nil, ErrNotTrained
	}
	raw := m.clf.importances(len(m.featureNames))
	out := make(map[string]float64, len(m.featureNames))
	for i, name := range m.featureNames {
		out[name] = raw[i]
	}
	return out, nil
}

// bundle is the self-contained persisted form of a trained model.
type bundle struct {
	Kind         Kind            `json:"kind"`
	FeatureNames []string        `json:"feature_names"`
	Scaler       *standardScaler `json:"scaler"`
	Classifier   json.RawMessage `json:"classifier"`
}

// Save persists the trained parameters, fitted scaler, ordered feature
// names and kind tag as one JSON bundle.
func (m *OutcomeModel) Save(path string) error {
	if !m.trained {
		return ErrNotTrained
	}

	clfPayload, err := json.Marshal(m.clf)
	if err != nil {
		return fmt.Errorf("marshal classifier: %w", err)
	}
	payload, err := json.MarshalIndent(bundle{
		Kind:         m.kind,
		FeatureNames: m.featureNames,
		Scaler:       m.scaler,
		Classifier:   clfPayload,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

// Load restores a saved bundle. The restored model predicts identically
// (within floating-point tolerance) to the instance that saved it.
func Load(path string) (*OutcomeModel, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}

	var b bundle
	if err := json.Unmarshal(payload, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}

	clf, err := newClassifier(b.Kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b.Classifier, clf); err != nil {
		return nil, fmt.Errorf("decode %s classifier: %w", b.Kind, err)
	}

	return &OutcomeModel{
		kind:         b.Kind,
		clf:          clf,
		scaler:       b.Scaler,
		featureNames: b.FeatureNames,
		trained:      true,
	}, nil
}

func sameSchema(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func accuracy(clf classifier, X [][]float64, y []float64) float64 {
	if len(X) == 0 {
		return 0
	}
	correct := 0
	for i, x := range X {
		pred := 0.0
		if clf.predictProba(x) >= 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
