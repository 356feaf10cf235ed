// Package model_selection provides data splitting, k-fold
// cross-validation, and exhaustive grid search over hyperparameter
// candidates.
package model_selection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
)

// TrainTestSplit partitions row-aligned X and Y into train and test
// subsets by a seeded random permutation. trainFraction must lie
// strictly between 0 and 1; the train set receives
// round(trainFraction*n) rows and the test set the remainder. The same
// seed always yields the same partition.
func TrainTestSplit(X, Y mat.Matrix, trainFraction float64, seed int64) (XTrain, YTrain, XTest, YTest *mat.Dense, err error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("trainFraction", "must be in (0, 1)", trainFraction)
	}

	n, _ := X.Dims()
	yRows, _ := Y.Dims()
	if n != yRows {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, yRows, 0)
	}
	if n == 0 {
		return nil, nil, nil, nil, errors.ErrEmptyData
	}

	nTrain := int(math.Round(trainFraction * float64(n)))
	if nTrain == 0 || nTrain == n {
		return nil, nil, nil, nil, errors.NewValidationError("trainFraction", "produces an empty split", trainFraction)
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	perm := rng.Perm(n)

	XTrain, YTrain = subsetRows(X, Y, perm[:nTrain])
	XTest, YTest = subsetRows(X, Y, perm[nTrain:])
	return XTrain, YTrain, XTest, YTest, nil
}

// subsetRows copies the given rows of X and Y into fresh matrices.
// Indices are sorted first for sequential access.
func subsetRows(X, Y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	rows := len(indices)
	_, xCols := X.Dims()
	_, yCols := Y.Dims()

	sorted := make([]int, rows)
	copy(sorted, indices)
	sort.Ints(sorted)

	xSub := mat.NewDense(rows, xCols, nil)
	ySub := mat.NewDense(rows, yCols, nil)
	for i, idx := range sorted {
		for j := 0; j < xCols; j++ {
			xSub.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySub.Set(i, j, Y.At(idx, j))
		}
	}
	return xSub, ySub
}
