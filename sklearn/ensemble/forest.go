// Package ensemble implements a random-forest regressor with a
// scikit-learn compatible API.
package ensemble

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/core/model"
	"github.com/groveml/grove/core/parallel"
	"github.com/groveml/grove/metrics"
	groveErrors "github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/pkg/log"
	"github.com/groveml/grove/sklearn/tree"
)

// Feature-sampling strategies for MaxFeatures.
const (
	// MaxFeaturesAll considers every feature at each split.
	MaxFeaturesAll = "all"
	// MaxFeaturesSqrt considers ceil(sqrt(n_features)) features per split.
	MaxFeaturesSqrt = "sqrt"
)

// RandomForestRegressor averages the predictions of bootstrap-trained
// regression trees. Multi-output targets are supported; each tree
// predicts all target columns.
type RandomForestRegressor struct {
	model.BaseEstimator

	// Hyperparameters
	NEstimators     int    // number of trees
	MaxFeatures     string // "all" or "sqrt"
	MaxDepth        int    // per-tree depth limit, 0 means unbounded
	MinSamplesSplit int    // minimum rows to attempt a split
	MinSamplesLeaf  int    // minimum rows in each leaf
	Bootstrap       bool   // sample rows with replacement per tree
	Seed            int64  // base seed; tree i uses Seed+i

	// Internal state
	trees     []*tree.DecisionTreeRegressor
	nFeatures int
	nOutputs  int
}

// NewRandomForestRegressor returns a forest with scikit-learn defaults.
func NewRandomForestRegressor() *RandomForestRegressor {
	return &RandomForestRegressor{
		NEstimators:     100,
		MaxFeatures:     MaxFeaturesAll,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
		Seed:            42,
	}
}

// WithNEstimators sets the number of trees.
func (rf *RandomForestRegressor) WithNEstimators(n int) *RandomForestRegressor {
	rf.NEstimators = n
	return rf
}

// WithMaxFeatures sets the feature-sampling strategy ("all" or "sqrt").
func (rf *RandomForestRegressor) WithMaxFeatures(strategy string) *RandomForestRegressor {
	rf.MaxFeatures = strategy
	return rf
}

// WithMaxDepth sets the per-tree depth limit. Zero means unbounded.
func (rf *RandomForestRegressor) WithMaxDepth(d int) *RandomForestRegressor {
	rf.MaxDepth = d
	return rf
}

// WithMinSamplesSplit sets the minimum rows required to split a node.
func (rf *RandomForestRegressor) WithMinSamplesSplit(n int) *RandomForestRegressor {
	rf.MinSamplesSplit = n
	return rf
}

// WithMinSamplesLeaf sets the minimum rows required in each leaf.
func (rf *RandomForestRegressor) WithMinSamplesLeaf(n int) *RandomForestRegressor {
	rf.MinSamplesLeaf = n
	return rf
}

// WithSeed sets the base random seed.
func (rf *RandomForestRegressor) WithSeed(seed int64) *RandomForestRegressor {
	rf.Seed = seed
	return rf
}

// Fit trains the forest on X (rows×features) and Y (rows×targets).
// Trees are trained across all CPU cores; the result is deterministic
// for a fixed seed because each tree derives its own random stream from
// Seed and its index.
func (rf *RandomForestRegressor) Fit(X, Y mat.Matrix) (err error) {
	defer groveErrors.Recover(&err, "RandomForestRegressor.Fit")

	rows, cols := X.Dims()
	yRows, yCols := Y.Dims()
	if rows == 0 {
		return groveErrors.NewValueError("RandomForestRegressor.Fit", "empty training data")
	}
	if rows != yRows {
		return groveErrors.NewDimensionError("RandomForestRegressor.Fit", rows, yRows, 0)
	}
	if rf.NEstimators < 1 {
		return groveErrors.NewValidationError("NEstimators", "must be at least 1", rf.NEstimators)
	}

	maxFeatures, ferr := resolveMaxFeatures(rf.MaxFeatures, cols)
	if ferr != nil {
		return ferr
	}

	rf.nFeatures = cols
	rf.nOutputs = yCols

	logger := log.GetLoggerWithName("ensemble.forest")
	start := time.Now()
	logger.Info("training started",
		log.ModelNameKey, "RandomForestRegressor",
		log.OperationKey, "fit",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.TargetsKey, yCols,
		"n_estimators", rf.NEstimators,
	)

	xd := mat.DenseCopyOf(X)
	yd := mat.DenseCopyOf(Y)

	trees := make([]*tree.DecisionTreeRegressor, rf.NEstimators)
	errs := make([]error, rf.NEstimators)

	parallel.Parallelize(rf.NEstimators, func(startIdx, endIdx int) {
		for i := startIdx; i < endIdx; i++ {
			treeSeed := rf.Seed + int64(i)

			t := tree.NewDecisionTreeRegressor()
			t.MaxDepth = rf.MaxDepth
			t.MinSamplesSplit = rf.MinSamplesSplit
			t.MinSamplesLeaf = rf.MinSamplesLeaf
			t.MaxFeatures = maxFeatures
			t.Seed = treeSeed

			indices := bootstrapIndices(rows, treeSeed, rf.Bootstrap)
			if err := t.FitIndices(xd, yd, indices); err != nil {
				errs[i] = groveErrors.Wrapf(err, "tree %d", i)
				return
			}
			trees[i] = t
		}
	})

	for _, e := range errs {
		if e != nil {
			return groveErrors.NewModelError("RandomForestRegressor.Fit", "tree training failed", e)
		}
	}

	rf.trees = trees
	rf.SetFitted()

	logger.Info("training completed",
		log.OperationKey, "fit",
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns the per-row average of all tree predictions.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, groveErrors.NewNotFittedError("RandomForestRegressor", "Predict")
	}
	rows, cols := X.Dims()
	if cols != rf.nFeatures {
		return nil, groveErrors.NewDimensionError("RandomForestRegressor.Predict", rf.nFeatures, cols, 1)
	}

	sum := mat.NewDense(rows, rf.nOutputs, nil)
	for _, t := range rf.trees {
		pred, err := t.Predict(X)
		if err != nil {
			return nil, err
		}
		sum.Add(sum, pred)
	}
	sum.Scale(1/float64(len(rf.trees)), sum)
	return sum, nil
}

// Score returns the uniform-average R² over all target columns.
func (rf *RandomForestRegressor) Score(X, Y mat.Matrix) (float64, error) {
	if !rf.IsFitted() {
		return 0, groveErrors.NewNotFittedError("RandomForestRegressor", "Score")
	}
	pred, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(Y, pred)
}

// GetParams returns the hyperparameters as a map, mirroring the
// scikit-learn get_params convention.
func (rf *RandomForestRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":      rf.NEstimators,
		"max_features":      rf.MaxFeatures,
		"max_depth":         rf.MaxDepth,
		"min_samples_split": rf.MinSamplesSplit,
		"min_samples_leaf":  rf.MinSamplesLeaf,
		"bootstrap":         rf.Bootstrap,
		"random_state":      rf.Seed,
	}
}

// resolveMaxFeatures maps a strategy name to a per-split feature count.
func resolveMaxFeatures(strategy string, nFeatures int) (int, error) {
	switch strategy {
	case MaxFeaturesAll, "":
		return 0, nil // tree treats 0 as all features
	case MaxFeaturesSqrt:
		return int(math.Ceil(math.Sqrt(float64(nFeatures)))), nil
	default:
		return 0, groveErrors.NewValidationError("MaxFeatures", `must be "all" or "sqrt"`, strategy)
	}
}

// bootstrapIndices draws n row indices, with replacement when bootstrap
// is set, from a PCG stream seeded per tree.
func bootstrapIndices(n int, seed int64, bootstrap bool) []int {
	indices := make([]int, n)
	if !bootstrap {
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	for i := range indices {
		indices[i] = rng.IntN(n)
	}
	return indices
}
