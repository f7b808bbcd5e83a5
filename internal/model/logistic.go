package model

import (
	"math"
	"math/rand"
)

// logisticClassifier is the linear variant: batch gradient descent on
// log-loss over the scaled features.
type logisticClassifier struct {
	MaxIters     int       `json:"max_iters"`
	LearningRate float64   `json:"learning_rate"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
}

func newLogistic() *logisticClassifier {
	return &logisticClassifier{
		MaxIters:     1000,
		LearningRate: 0.1,
	}
}

func (l *logisticClassifier) fit(X [][]float64, y []float64, rng *rand.Rand) {
	n := len(X)
	d := len(X[0])
	l.Weights = make([]float64, d)
	l.Bias = 0

	grad := make([]float64, d)
	for iter := 0; iter < l.MaxIters; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		var biasGrad float64

		for i, x := range X {
			// d/dw of -[y log p + (1-y) log(1-p)] is (p-y)*x
			diff := sigmoid(l.Bias+dot(l.Weights, x)) - y[i]
			for j, v := range x {
				grad[j] += diff * v
			}
			biasGrad += diff
		}

		step := l.LearningRate / float64(n)
		for j := range l.Weights {
			l.Weights[j] -= step * grad[j]
		}
		l.Bias -= step * biasGrad
	}
}

func (l *logisticClassifier) predictProba(x []float64) float64 {
	return sigmoid(l.Bias + dot(l.Weights, x))
}

// importances are the normalized absolute weights; meaningful because
// the inputs are standardized.
func (l *logisticClassifier) importances(numFeatures int) []float64 {
	out := make([]float64, numFeatures)
	for i := 0; i < numFeatures && i < len(l.Weights); i++ {
		out[i] = math.Abs(l.Weights[i])
	}
	normalize(out)
	return out
}

func (l *logisticClassifier) clone() classifier {
	return &logisticClassifier{
		MaxIters:     l.MaxIters,
		LearningRate: l.LearningRate,
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
