// Package tree implements a CART regression tree with multi-output
// support. Splits minimize the summed squared error across all target
// columns; leaves predict the per-column mean of their training rows.
package tree

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/core/model"
	groveErrors "github.com/groveml/grove/pkg/errors"
)

// DecisionTreeRegressor is a scikit-learn style regression tree.
type DecisionTreeRegressor struct {
	model.BaseEstimator

	// Hyperparameters
	MaxDepth        int   // maximum depth, 0 means unbounded
	MinSamplesSplit int   // minimum rows to attempt a split
	MinSamplesLeaf  int   // minimum rows in each child
	MaxFeatures     int   // features sampled per split, 0 means all
	Seed            int64 // seed for feature subsampling

	// Internal state
	root      *node
	nFeatures int
	nOutputs  int
}

// node is one tree node. Leaves carry the per-output mean value.
type node struct {
	leaf      bool
	feature   int
	threshold float64 // x[feature] <= threshold goes left
	left      *node
	right     *node
	value     []float64
}

// NewDecisionTreeRegressor returns a tree with scikit-learn defaults.
func NewDecisionTreeRegressor() *DecisionTreeRegressor {
	return &DecisionTreeRegressor{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Seed:            42,
	}
}

// Fit trains the tree on X (rows×features) and Y (rows×targets).
func (t *DecisionTreeRegressor) Fit(X, Y mat.Matrix) (err error) {
	defer groveErrors.Recover(&err, "DecisionTreeRegressor.Fit")

	rows, cols := X.Dims()
	yRows, yCols := Y.Dims()
	if rows == 0 {
		return groveErrors.NewValueError("DecisionTreeRegressor.Fit", "empty training data")
	}
	if rows != yRows {
		return groveErrors.NewDimensionError("DecisionTreeRegressor.Fit", rows, yRows, 0)
	}
	if t.MinSamplesSplit < 2 {
		return groveErrors.NewValidationError("MinSamplesSplit", "must be at least 2", t.MinSamplesSplit)
	}
	if t.MinSamplesLeaf < 1 {
		return groveErrors.NewValidationError("MinSamplesLeaf", "must be at least 1", t.MinSamplesLeaf)
	}
	if t.MaxFeatures < 0 || t.MaxFeatures > cols {
		return groveErrors.NewValidationError("MaxFeatures", "must be in [0, n_features]", t.MaxFeatures)
	}

	t.nFeatures = cols
	t.nOutputs = yCols

	xd := mat.DenseCopyOf(X)
	yd := mat.DenseCopyOf(Y)

	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}

	rng := rand.New(rand.NewPCG(uint64(t.Seed), uint64(t.Seed)))
	t.root = t.build(xd, yd, idx, 0, rng)
	t.SetFitted()
	return nil
}

// FitIndices trains the tree on the given row subset of (X, Y). The
// forest uses this for bootstrap samples; indices may repeat.
func (t *DecisionTreeRegressor) FitIndices(X, Y *mat.Dense, indices []int) (err error) {
	defer groveErrors.Recover(&err, "DecisionTreeRegressor.FitIndices")

	if len(indices) == 0 {
		return groveErrors.NewValueError("DecisionTreeRegressor.FitIndices", "empty index set")
	}
	_, cols := X.Dims()
	_, yCols := Y.Dims()

	t.nFeatures = cols
	t.nOutputs = yCols

	idx := make([]int, len(indices))
	copy(idx, indices)

	rng := rand.New(rand.NewPCG(uint64(t.Seed), uint64(t.Seed)))
	t.root = t.build(X, Y, idx, 0, rng)
	t.SetFitted()
	return nil
}

// Predict returns one prediction row per input row.
func (t *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, groveErrors.NewNotFittedError("DecisionTreeRegressor", "Predict")
	}
	rows, cols := X.Dims()
	if cols != t.nFeatures {
		return nil, groveErrors.NewDimensionError("DecisionTreeRegressor.Predict", t.nFeatures, cols, 1)
	}

	out := mat.NewDense(rows, t.nOutputs, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = X.At(i, j)
		}
		value := t.root.predict(row)
		for j := 0; j < t.nOutputs; j++ {
			out.Set(i, j, value[j])
		}
	}
	return out, nil
}

func (n *node) predict(row []float64) []float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// build grows the tree recursively over the rows in idx.
func (t *DecisionTreeRegressor) build(X, Y *mat.Dense, idx []int, depth int, rng *rand.Rand) *node {
	n := len(idx)
	mean, sse := t.leafStats(Y, idx)

	if n < t.MinSamplesSplit || n < 2*t.MinSamplesLeaf || sse <= 1e-12 {
		return &node{leaf: true, value: mean}
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return &node{leaf: true, value: mean}
	}

	feature, threshold, ok := t.bestSplit(X, Y, idx, sse, rng)
	if !ok {
		return &node{leaf: true, value: mean}
	}

	left := make([]int, 0, n)
	right := make([]int, 0, n)
	for _, i := range idx {
		if X.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &node{leaf: true, value: mean}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      t.build(X, Y, left, depth+1, rng),
		right:     t.build(X, Y, right, depth+1, rng),
	}
}

// leafStats returns the per-output mean and the total squared error of
// the rows in idx.
func (t *DecisionTreeRegressor) leafStats(Y *mat.Dense, idx []int) (mean []float64, sse float64) {
	n := float64(len(idx))
	mean = make([]float64, t.nOutputs)
	for _, i := range idx {
		for j := 0; j < t.nOutputs; j++ {
			mean[j] += Y.At(i, j)
		}
	}
	for j := range mean {
		mean[j] /= n
	}
	for _, i := range idx {
		for j := 0; j < t.nOutputs; j++ {
			d := Y.At(i, j) - mean[j]
			sse += d * d
		}
	}
	return mean, sse
}

// bestSplit finds the (feature, threshold) pair minimizing the summed
// child squared error. Candidate features are subsampled when
// MaxFeatures is set, matching the random-forest feature strategy.
func (t *DecisionTreeRegressor) bestSplit(X, Y *mat.Dense, idx []int, parentSSE float64, rng *rand.Rand) (int, float64, bool) {
	n := len(idx)

	features := t.candidateFeatures(rng)

	bestScore := parentSSE
	bestFeature := -1
	bestThreshold := 0.0
	found := false

	// Scratch buffers reused across features.
	order := make([]int, n)
	sumLeft := make([]float64, t.nOutputs)
	sumRight := make([]float64, t.nOutputs)
	totalSum := make([]float64, t.nOutputs)

	var totalSq float64
	for _, i := range idx {
		for j := 0; j < t.nOutputs; j++ {
			v := Y.At(i, j)
			totalSum[j] += v
			totalSq += v * v
		}
	}

	for _, f := range features {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return X.At(order[a], f) < X.At(order[b], f)
		})

		for j := range sumLeft {
			sumLeft[j] = 0
		}
		var sqLeft float64

		for s := 1; s < n; s++ {
			row := order[s-1]
			for j := 0; j < t.nOutputs; j++ {
				v := Y.At(row, j)
				sumLeft[j] += v
				sqLeft += v * v
			}

			prev := X.At(order[s-1], f)
			curr := X.At(order[s], f)
			if curr <= prev {
				continue
			}
			if s < t.MinSamplesLeaf || n-s < t.MinSamplesLeaf {
				continue
			}

			// SSE = Σ y² - (Σ y)²/n, accumulated over all outputs.
			nL, nR := float64(s), float64(n-s)
			var meanTermL, meanTermR float64
			for j := 0; j < t.nOutputs; j++ {
				sumRight[j] = totalSum[j] - sumLeft[j]
				meanTermL += sumLeft[j] * sumLeft[j]
				meanTermR += sumRight[j] * sumRight[j]
			}
			sqRight := totalSq - sqLeft
			score := (sqLeft - meanTermL/nL) + (sqRight - meanTermR/nR)

			if score < bestScore-1e-12 {
				bestScore = score
				bestFeature = f
				bestThreshold = prev + (curr-prev)/2
				found = true
			}
		}
	}

	if !found || math.IsNaN(bestThreshold) {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// candidateFeatures returns the feature indices considered at a split.
func (t *DecisionTreeRegressor) candidateFeatures(rng *rand.Rand) []int {
	if t.MaxFeatures <= 0 || t.MaxFeatures >= t.nFeatures {
		all := make([]int, t.nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(t.nFeatures)
	return perm[:t.MaxFeatures]
}
