package model

import "math/rand"

// trainTestSplit shuffles the rows with the provided seeded RNG and
// carves off the trailing fraction as the test set.
func trainTestSplit(X [][]float64, y []float64, testFrac float64, rng *rand.Rand) (trainX, testX [][]float64, trainY, testY []float64) {
	n := len(X)
	perm := rng.Perm(n)

	testN := int(float64(n) * testFrac)
	if testN < 1 && n > 1 {
		testN = 1
	}
	trainN := n - testN

	trainX = make([][]float64, 0, trainN)
	trainY = make([]float64, 0, trainN)
	testX = make([][]float64, 0, testN)
	testY = make([]float64, 0, testN)

	for pos, i := range perm {
		if pos < trainN {
			trainX = append(trainX, X[i])
			trainY = append(trainY, y[i])
		} else {
			testX = append(testX, X[i])
			testY = append(testY, y[i])
		}
	}
	return trainX, testX, trainY, testY
}

// kFoldIndices shuffles 0..n-1 and deals the indices into k folds.
func kFoldIndices(n, k int, rng *rand.Rand) [][]int {
	if k > n {
		k = n
	}
	if k < 2 {
		k = 2
	}
	folds := make([][]int, k)
	for pos, i := range rng.Perm(n) {
		f := pos % k
		folds[f] = append(folds[f], i)
	}
	return folds
}
