// Package metrics implements the regression evaluation metrics used by
// the workflow report and by cross-validated grid search.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
)

// MSE computes the mean squared error between two vectors.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error between two vectors.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error between two vectors.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination R².
// R² is at most 1 and may be negative for fits worse than the mean.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)
		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// ===========================================================================
//
//	Multi-output variants
//
// Targets with several columns are scored per column and averaged with
// uniform weights, matching scikit-learn's multioutput="uniform_average".
//
// ===========================================================================

// MAEMatrix computes MAE over all entries of two rows×targets matrices.
func MAEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	return meanPerColumn("MAEMatrix", yTrue, yPred, MAE)
}

// MSEMatrix computes MSE over all entries of two rows×targets matrices.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	return meanPerColumn("MSEMatrix", yTrue, yPred, MSE)
}

// RMSEMatrix computes the square root of MSEMatrix.
func RMSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2ScoreMatrix computes R² per target column and averages the scores.
// A zero-variance column contributes 0 and raises an
// UndefinedMetricWarning instead of failing the whole evaluation.
func R2ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rows, cols, err := checkShapes("R2ScoreMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var total float64
	for j := 0; j < cols; j++ {
		tCol := mat.NewVecDense(rows, nil)
		pCol := mat.NewVecDense(rows, nil)
		for i := 0; i < rows; i++ {
			tCol.SetVec(i, yTrue.At(i, j))
			pCol.SetVec(i, yPred.At(i, j))
		}

		score, err := R2Score(tCol, pCol)
		if err != nil {
			errors.Warn(errors.NewUndefinedMetricWarning("r2", "zero variance in y_true column", 0.0))
			score = 0.0
		}
		total += score
	}
	return total / float64(cols), nil
}

// meanPerColumn averages a vector metric over the target columns.
func meanPerColumn(op string, yTrue, yPred mat.Matrix, metric func(a, b *mat.VecDense) (float64, error)) (float64, error) {
	rows, cols, err := checkShapes(op, yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var total float64
	for j := 0; j < cols; j++ {
		tCol := mat.NewVecDense(rows, nil)
		pCol := mat.NewVecDense(rows, nil)
		for i := 0; i < rows; i++ {
			tCol.SetVec(i, yTrue.At(i, j))
			pCol.SetVec(i, yPred.At(i, j))
		}

		v, err := metric(tCol, pCol)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total / float64(cols), nil
}

func checkShapes(op string, yTrue, yPred mat.Matrix) (rows, cols int, err error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, 0, errors.NewValueError(op, "empty matrix")
	}
	if rTrue != rPred {
		return 0, 0, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, 0, errors.NewDimensionError(op, cTrue, cPred, 1)
	}
	return rTrue, cTrue, nil
}
