package model

import (
	"math"
	"math/rand"
)

// forestClassifier is the bagged-trees variant: bootstrap samples, a
// random feature subset per split, prediction by averaging leaf
// probabilities.
type forestClassifier struct {
	NumTrees        int         `json:"num_trees"`
	MaxDepth        int         `json:"max_depth"`
	MinSamplesSplit int         `json:"min_samples_split"`
	Trees           []*treeNode `json:"trees"`
	Importance      []float64   `json:"importance"`
}

func newForest() *forestClassifier {
	return &forestClassifier{
		NumTrees:        100,
		MaxDepth:        10,
		MinSamplesSplit: 10,
	}
}

func (f *forestClassifier) fit(X [][]float64, y []float64, rng *rand.Rand) {
	n := len(X)
	numFeatures := len(X[0])
	maxFeatures := int(math.Sqrt(float64(numFeatures)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	cfg := treeConfig{
		maxDepth:        f.MaxDepth,
		minSamplesSplit: f.MinSamplesSplit,
		maxFeatures:     maxFeatures,
	}

	f.Trees = make([]*treeNode, 0, f.NumTrees)
	f.Importance = make([]float64, numFeatures)

	idx := make([]int, n)
	for t := 0; t < f.NumTrees; t++ {
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		f.Trees = append(f.Trees, buildTree(X, y, idx, cfg, 0, rng, f.Importance))
	}

	normalize(f.Importance)
}

func (f *forestClassifier) predictProba(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0.5
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.Trees))
}

func (f *forestClassifier) importances(numFeatures int) []float64 {
	if len(f.Importance) == numFeatures {
		return f.Importance
	}
	return make([]float64, numFeatures)
}

func (f *forestClassifier) clone() classifier {
	return &forestClassifier{
		NumTrees:        f.NumTrees,
		MaxDepth:        f.MaxDepth,
		MinSamplesSplit: f.MinSamplesSplit,
	}
}

func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum == 0 {
		return
	}
	for i := range v {
		v[i] /= sum
	}
}
