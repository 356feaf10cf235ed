// Command grove runs the reference random-forest regression workflow:
// load a spreadsheet, split it, grid-search hyperparameters with 5-fold
// cross-validation, evaluate the winning forest, and render a
// prediction scatter plot.
package main

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/dataset"
	"github.com/groveml/grove/metrics"
	"github.com/groveml/grove/pkg/log"
	"github.com/groveml/grove/sklearn/ensemble"
	"github.com/groveml/grove/sklearn/model_selection"
	"github.com/groveml/grove/visualize"
)

const (
	dataPath = "data.xlsx"
	plotPath = "prediction_scatter.png"

	numFeatures = 12
	numTargets  = 6

	trainFraction = 0.8
	seed          = 42
	cvFolds       = 5
)

func main() {
	logger := log.GetLoggerWithName("cmd.grove")

	fatal := func(stage string, err error) {
		logger.Error(stage+" failed", log.ErrAttrKey, err)
		os.Exit(1)
	}

	// Stage 1: load the spreadsheet.
	loader := dataset.NewLoader(numFeatures, numTargets)
	X, Y, err := loader.Load(dataPath)
	if err != nil {
		fatal("loading", err)
	}

	// Stage 2: split into train and test.
	XTrain, YTrain, XTest, YTest, err := model_selection.TrainTestSplit(X, Y, trainFraction, seed)
	if err != nil {
		fatal("splitting", err)
	}
	printShape("X_train", XTrain)
	printShape("Y_train", YTrain)
	printShape("X_test", XTest)
	printShape("Y_test", YTest)

	// Stage 3: exhaustive grid search with cross-validation.
	search := model_selection.NewGridSearchCV(model_selection.ReferenceGrid(), newForest, seed)
	search.CV = model_selection.NewKFold(cvFolds, true, seed)

	result, err := search.Fit(XTrain, YTrain)
	if err != nil {
		fatal("grid search", err)
	}

	best := result.BestParams
	fmt.Println("Best hyperparameters:")
	fmt.Printf("  n_estimators:      %d\n", best.NEstimators)
	fmt.Printf("  max_features:      %s\n", best.MaxFeatures)
	if best.MaxDepth == model_selection.UnboundedDepth {
		fmt.Printf("  max_depth:         unbounded\n")
	} else {
		fmt.Printf("  max_depth:         %d\n", best.MaxDepth)
	}
	fmt.Printf("  min_samples_split: %d\n", best.MinSamplesSplit)
	fmt.Printf("  min_samples_leaf:  %d\n", best.MinSamplesLeaf)
	fmt.Printf("CV    MAE: %.2f  RMSE: %.2f  R²: %.2f\n", result.MAE, result.RMSE, result.R2)

	// Stage 4: refit the winner on the full training split and evaluate.
	forest := newForestFromParams(best)
	if err := forest.Fit(XTrain, YTrain); err != nil {
		fatal("training", err)
	}

	trainPred, err := forest.Predict(XTrain)
	if err != nil {
		fatal("train prediction", err)
	}
	testPred, err := forest.Predict(XTest)
	if err != nil {
		fatal("test prediction", err)
	}

	if err := report("Train", YTrain, trainPred); err != nil {
		fatal("train evaluation", err)
	}
	if err := report("Test ", YTest, testPred); err != nil {
		fatal("test evaluation", err)
	}

	// Stage 5: diagnostic scatter plot.
	if err := visualize.SaveComparison(YTrain, trainPred, YTest, testPred, plotPath); err != nil {
		fatal("plotting", err)
	}
}

// newForest adapts the forest constructor to the grid-search factory.
func newForest(p model_selection.Params) model_selection.Estimator {
	return newForestFromParams(p)
}

func newForestFromParams(p model_selection.Params) *ensemble.RandomForestRegressor {
	return ensemble.NewRandomForestRegressor().
		WithNEstimators(p.NEstimators).
		WithMaxFeatures(p.MaxFeatures).
		WithMaxDepth(p.MaxDepth).
		WithMinSamplesSplit(p.MinSamplesSplit).
		WithMinSamplesLeaf(p.MinSamplesLeaf).
		WithSeed(seed)
}

func printShape(name string, m mat.Matrix) {
	rows, cols := m.Dims()
	fmt.Printf("%s: (%d, %d)\n", name, rows, cols)
}

func report(name string, actual, predicted mat.Matrix) error {
	mae, err := metrics.MAEMatrix(actual, predicted)
	if err != nil {
		return err
	}
	rmse, err := metrics.RMSEMatrix(actual, predicted)
	if err != nil {
		return err
	}
	r2, err := metrics.R2ScoreMatrix(actual, predicted)
	if err != nil {
		return err
	}
	fmt.Printf("%s MAE: %.2f  RMSE: %.2f  R²: %.2f\n", name, mae, rmse, r2)
	return nil
}
