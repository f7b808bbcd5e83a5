package model

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree. For binary labels the leaf
// value is the class-1 fraction, so the same builder serves both the
// bagged probability trees and the boosting residual trees (variance
// reduction on 0/1 targets is gini impurity up to a constant factor).
type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"v"`
	Feature   int       `json:"f,omitempty"`
	Threshold float64   `json:"t,omitempty"`
	Left      *treeNode `json:"l,omitempty"`
	Right     *treeNode `json:"r,omitempty"`
}

type treeConfig struct {
	maxDepth        int
	minSamplesSplit int
	// maxFeatures limits the candidate features per split; 0 means all.
	maxFeatures int
}

// buildTree grows a tree on the rows indexed by idx. Split gains are
// accumulated into importances (indexed by feature) when non-nil.
func buildTree(X [][]float64, y []float64, idx []int, cfg treeConfig, depth int, rng *rand.Rand, importances []float64) *treeNode {
	mean := meanAt(y, idx)

	if depth >= cfg.maxDepth || len(idx) < cfg.minSamplesSplit || isPure(y, idx) {
		return &treeNode{Leaf: true, Value: mean}
	}

	feature, threshold, gain, ok := bestSplit(X, y, idx, cfg, rng)
	if !ok {
		return &treeNode{Leaf: true, Value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{Leaf: true, Value: mean}
	}

	if importances != nil {
		importances[feature] += gain * float64(len(idx))
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(X, y, left, cfg, depth+1, rng, importances),
		Right:     buildTree(X, y, right, cfg, depth+1, rng, importances),
	}
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// bestSplit scans candidate features for the threshold with the largest
// variance reduction, using sorted prefix sums so each feature costs
// O(n log n).
func bestSplit(X [][]float64, y []float64, idx []int, cfg treeConfig, rng *rand.Rand) (feature int, threshold, gain float64, ok bool) {
	n := len(idx)
	numFeatures := len(X[0])
	candidates := candidateFeatures(numFeatures, cfg.maxFeatures, rng)

	var totalSum, totalSq float64
	for _, i := range idx {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}
	parentVar := totalSq/float64(n) - (totalSum/float64(n))*(totalSum/float64(n))

	bestGain := 0.0
	order := make([]int, n)

	for _, f := range candidates {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		var leftSum, leftSq float64
		for pos := 0; pos < n-1; pos++ {
			i := order[pos]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			// Only split between distinct values
			if X[order[pos]][f] == X[order[pos+1]][f] {
				continue
			}

			nl := float64(pos + 1)
			nr := float64(n - pos - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq

			leftVar := leftSq/nl - (leftSum/nl)*(leftSum/nl)
			rightVar := rightSq/nr - (rightSum/nr)*(rightSum/nr)
			weighted := (nl*leftVar + nr*rightVar) / float64(n)

			if g := parentVar - weighted; g > bestGain {
				bestGain = g
				feature = f
				threshold = (X[order[pos]][f] + X[order[pos+1]][f]) / 2
				ok = true
			}
		}
	}

	return feature, threshold, bestGain, ok
}

// candidateFeatures returns the feature indices considered at one split;
// a random subset of size maxFeatures when set, else all of them.
func candidateFeatures(numFeatures, maxFeatures int, rng *rand.Rand) []int {
	if maxFeatures <= 0 || maxFeatures >= numFeatures {
		all := make([]int, numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(numFeatures)
	subset := perm[:maxFeatures]
	sort.Ints(subset)
	return subset
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func isPure(y []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}
