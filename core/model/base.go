// Package model defines the estimator contracts shared by all grove
// learners.
package model

// EstimatorState tracks whether an estimator has been trained.
type EstimatorState int

const (
	// NotFitted means Fit has not completed yet.
	NotFitted EstimatorState = iota
	// Fitted means the estimator holds a trained model.
	Fitted
)

// BaseEstimator is embedded by every estimator to provide the fitted
// state machine.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the estimator has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to the untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
