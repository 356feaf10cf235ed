package model_selection

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/core/parallel"
	"github.com/groveml/grove/metrics"
	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/pkg/log"
)

// Estimator is the minimal surface grid search needs from a regressor.
type Estimator interface {
	Fit(X, Y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// EstimatorFactory builds a fresh estimator for one configuration.
// Every fold gets its own instance so no state leaks between fits.
type EstimatorFactory func(p Params) Estimator

// CandidateResult holds the cross-validated mean scores of one
// configuration.
type CandidateResult struct {
	Params   Params
	MeanMAE  float64
	MeanRMSE float64
	MeanR2   float64
}

// GridSearchResult reports the winning configuration and the scores of
// every candidate.
type GridSearchResult struct {
	BestParams Params
	BestIndex  int

	// Cross-validated scores of the winner.
	MAE  float64
	RMSE float64
	R2   float64

	Candidates []CandidateResult
}

// GridSearchCV exhaustively evaluates every configuration in Grid with
// k-fold cross-validation and selects the one with the lowest mean MAE.
// Candidates run across Workers goroutines; selection is deterministic,
// ties resolve to the earliest candidate in enumeration order.
type GridSearchCV struct {
	Grid    ParamGrid
	CV      *KFold
	New     EstimatorFactory
	Workers int // 0 means one worker per CPU core
	Verbose bool
}

// NewGridSearchCV creates a grid search with 5-fold shuffled
// cross-validation under the given seed.
func NewGridSearchCV(grid ParamGrid, factory EstimatorFactory, seed int64) *GridSearchCV {
	return &GridSearchCV{
		Grid: grid,
		CV:   NewKFold(5, true, seed),
		New:  factory,
	}
}

// Fit runs the search on (X, Y).
func (gs *GridSearchCV) Fit(X, Y mat.Matrix) (*GridSearchResult, error) {
	if gs.New == nil {
		return nil, errors.NewValidationError("New", "estimator factory is required", nil)
	}
	if gs.CV == nil {
		gs.CV = NewKFold(5, true, 0)
	}

	candidates := gs.Grid.Candidates()
	if len(candidates) == 0 {
		return nil, errors.NewValidationError("Grid", "no candidates to evaluate", gs.Grid)
	}

	n, _ := X.Dims()
	yRows, _ := Y.Dims()
	if n != yRows {
		return nil, errors.NewDimensionError("GridSearchCV.Fit", n, yRows, 0)
	}
	if n < gs.CV.NSplits {
		return nil, errors.Newf("GridSearchCV.Fit: %d samples cannot form %d folds", n, gs.CV.NSplits)
	}

	logger := log.GetLoggerWithName("model_selection.grid_search")
	start := time.Now()
	logger.Info("grid search started",
		log.OperationKey, "grid_search",
		log.SamplesKey, n,
		log.CandidatesKey, len(candidates),
		log.FoldsKey, gs.CV.NSplits,
	)

	// Fold submatrices are shared by every candidate, so build them once.
	folds := gs.CV.Split(n)
	foldData := make([]foldMatrices, len(folds))
	for i, fold := range folds {
		trainX, trainY := subsetRows(X, Y, fold.TrainIndices)
		testX, testY := subsetRows(X, Y, fold.TestIndices)
		foldData[i] = foldMatrices{trainX: trainX, trainY: trainY, testX: testX, testY: testY}
	}

	results := make([]CandidateResult, len(candidates))
	errs := make([]error, len(candidates))

	parallel.ParallelizeWithWorkers(len(candidates), gs.Workers, func(startIdx, endIdx int) {
		for c := startIdx; c < endIdx; c++ {
			result, err := gs.evaluate(candidates[c], foldData)
			if err != nil {
				errs[c] = err
				continue
			}
			results[c] = result
			if gs.Verbose {
				logger.Info("candidate evaluated",
					"candidate", c,
					log.MAEKey, result.MeanMAE,
					log.RMSEKey, result.MeanRMSE,
					log.R2ScoreKey, result.MeanR2,
				)
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	best := 0
	for c := 1; c < len(results); c++ {
		if results[c].MeanMAE < results[best].MeanMAE {
			best = c
		}
	}

	logger.Info("grid search completed",
		log.OperationKey, "grid_search",
		log.MAEKey, results[best].MeanMAE,
		log.RMSEKey, results[best].MeanRMSE,
		log.R2ScoreKey, results[best].MeanR2,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &GridSearchResult{
		BestParams: results[best].Params,
		BestIndex:  best,
		MAE:        results[best].MeanMAE,
		RMSE:       results[best].MeanRMSE,
		R2:         results[best].MeanR2,
		Candidates: results,
	}, nil
}

type foldMatrices struct {
	trainX, trainY *mat.Dense
	testX, testY   *mat.Dense
}

// evaluate cross-validates a single configuration.
func (gs *GridSearchCV) evaluate(p Params, folds []foldMatrices) (CandidateResult, error) {
	var sumMAE, sumRMSE, sumR2 float64

	for i, fold := range folds {
		est := gs.New(p)
		if err := est.Fit(fold.trainX, fold.trainY); err != nil {
			return CandidateResult{}, errors.Wrapf(err, "fold %d training failed", i)
		}

		pred, err := est.Predict(fold.testX)
		if err != nil {
			return CandidateResult{}, errors.Wrapf(err, "fold %d prediction failed", i)
		}

		mae, err := metrics.MAEMatrix(fold.testY, pred)
		if err != nil {
			return CandidateResult{}, errors.Wrapf(err, "fold %d MAE", i)
		}
		rmse, err := metrics.RMSEMatrix(fold.testY, pred)
		if err != nil {
			return CandidateResult{}, errors.Wrapf(err, "fold %d RMSE", i)
		}
		r2, err := metrics.R2ScoreMatrix(fold.testY, pred)
		if err != nil {
			return CandidateResult{}, errors.Wrapf(err, "fold %d R2", i)
		}

		sumMAE += mae
		sumRMSE += rmse
		sumR2 += r2
	}

	k := float64(len(folds))
	result := CandidateResult{
		Params:   p,
		MeanMAE:  sumMAE / k,
		MeanRMSE: sumRMSE / k,
		MeanR2:   sumR2 / k,
	}
	if math.IsNaN(result.MeanMAE) {
		return CandidateResult{}, errors.Newf("grid search: NaN score for configuration %+v", p)
	}
	return result, nil
}
