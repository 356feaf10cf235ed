// Standard attribute keys for machine learning log records. Using these
// keys keeps field names uniform across packages so records can be
// filtered by component, operation, or data shape.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "RandomForestRegressor", "DecisionTreeRegressor"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "score", "grid_search", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "ensemble", "model_selection", "dataset"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// TargetsKey is the number of target columns.
	TargetsKey = "data.targets"
)

// Performance and evaluation.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MAEKey records mean absolute error.
	MAEKey = "metrics.mae"

	// RMSEKey records root mean squared error.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records the R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// CandidatesKey records the number of hyperparameter candidates
	// evaluated during a grid search.
	CandidatesKey = "search.candidates"

	// FoldsKey records the number of cross-validation folds.
	FoldsKey = "search.folds"
)

// Error context.
const (
	// ErrAttrKey carries the error value on error records.
	ErrAttrKey = "error"

	// StacktraceAttrKey carries the stack trace extracted from the error.
	StacktraceAttrKey = "stacktrace"
)
