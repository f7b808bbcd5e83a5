package model

import (
	"math"
	"math/rand"
)

// boostingClassifier is the gradient-boosted variant: shallow regression
// trees fitted to log-loss residuals, combined additively in log-odds
// space.
type boostingClassifier struct {
	NumTrees        int         `json:"num_trees"`
	MaxDepth        int         `json:"max_depth"`
	MinSamplesSplit int         `json:"min_samples_split"`
	LearningRate    float64     `json:"learning_rate"`
	InitScore       float64     `json:"init_score"`
	Trees           []*treeNode `json:"trees"`
	Importance      []float64   `json:"importance"`
}

func newBoosting() *boostingClassifier {
	return &boostingClassifier{
		NumTrees:        100,
		MaxDepth:        5,
		MinSamplesSplit: 10,
		LearningRate:    0.1,
	}
}

func (b *boostingClassifier) fit(X [][]float64, y []float64, rng *rand.Rand) {
	n := len(X)
	numFeatures := len(X[0])

	base := meanAt(y, seq(n))
	base = math.Min(math.Max(base, 1e-6), 1-1e-6)
	b.InitScore = math.Log(base / (1 - base))

	cfg := treeConfig{
		maxDepth:        b.MaxDepth,
		minSamplesSplit: b.MinSamplesSplit,
	}

	b.Trees = make([]*treeNode, 0, b.NumTrees)
	b.Importance = make([]float64, numFeatures)

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = b.InitScore
	}

	residuals := make([]float64, n)
	idx := seq(n)
	for t := 0; t < b.NumTrees; t++ {
		for i := range residuals {
			residuals[i] = y[i] - sigmoid(scores[i])
		}
		tree := buildTree(X, residuals, idx, cfg, 0, rng, b.Importance)
		b.Trees = append(b.Trees, tree)
		for i := range scores {
			scores[i] += b.LearningRate * tree.predict(X[i])
		}
	}

	normalize(b.Importance)
}

func (b *boostingClassifier) predictProba(x []float64) float64 {
	score := b.InitScore
	for _, t := range b.Trees {
		score += b.LearningRate * t.predict(x)
	}
	return sigmoid(score)
}

func (b *boostingClassifier) importances(numFeatures int) []float64 {
	if len(b.Importance) == numFeatures {
		return b.Importance
	}
	return make([]float64, numFeatures)
}

func (b *boostingClassifier) clone() classifier {
	return &boostingClassifier{
		NumTrees:        b.NumTrees,
		MaxDepth:        b.MaxDepth,
		MinSamplesSplit: b.MinSamplesSplit,
		LearningRate:    b.LearningRate,
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
