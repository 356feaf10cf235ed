// Package grove is a scikit-learn-compatible machine learning toolkit
// for Go, centered on random-forest regression.
//
// The library follows scikit-learn's estimator conventions: estimators
// are configured with builder-style setters, trained with Fit, and
// queried with Predict and Score. Matrices are gonum mat.Matrix values
// throughout.
//
// Packages:
//
//   - dataset: XLSX feature/target loading
//   - metrics: regression metrics (MAE, MSE, RMSE, R²), single and
//     multi-output
//   - sklearn/tree: CART decision tree regressor
//   - sklearn/ensemble: random forest regressor
//   - sklearn/model_selection: train/test split, k-fold CV, exhaustive
//     grid search
//   - visualize: actual-vs-predicted scatter plots
//
// The cmd/grove binary wires these into a complete workflow: load a
// spreadsheet, split, grid-search hyperparameters under 5-fold
// cross-validation, evaluate the best forest, and save a comparison
// plot.
package grove
