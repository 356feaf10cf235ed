package model

import "gonum.org/v1/gonum/mat"

// Fitter is implemented by trainable estimators.
type Fitter interface {
	// Fit trains the estimator. Y may have multiple target columns.
	Fit(X, Y mat.Matrix) error
}

// Predictor is implemented by estimators that produce predictions.
type Predictor interface {
	// Predict returns one row of predictions per input row.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor combines training, prediction, and R² scoring.
type Regressor interface {
	Fitter
	Predictor
	// Score returns the coefficient of determination R² on (X, Y).
	Score(X, Y mat.Matrix) (float64, error)
}
