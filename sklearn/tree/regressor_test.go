package tree

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// stepData builds a single-feature dataset with two plateaus, the
// simplest shape a depth-1 tree can fit exactly.
func stepData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(8, 1, []float64{0, 1, 2, 3, 10, 11, 12, 13})
	Y := mat.NewDense(8, 1, []float64{5, 5, 5, 5, 20, 20, 20, 20})
	return X, Y
}

func TestFitPredictStepFunction(t *testing.T) {
	X, Y := stepData()

	reg := NewDecisionTreeRegressor()
	if err := reg.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := reg.Predict(mat.NewDense(2, 1, []float64{1.5, 11.5}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got := pred.At(0, 0); math.Abs(got-5) > 1e-9 {
		t.Errorf("prediction for low plateau = %v, want 5", got)
	}
	if got := pred.At(1, 0); math.Abs(got-20) > 1e-9 {
		t.Errorf("prediction for high plateau = %v, want 20", got)
	}
}

func TestPredictBeforeFit(t *testing.T) {
	reg := NewDecisionTreeRegressor()
	if _, err := reg.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("expected NotFittedError before Fit")
	}
}

func TestFitDimensionMismatch(t *testing.T) {
	reg := NewDecisionTreeRegressor()
	X := mat.NewDense(4, 2, nil)
	Y := mat.NewDense(3, 1, nil)
	if err := reg.Fit(X, Y); err == nil {
		t.Error("expected error for row mismatch")
	}
}

func TestMaxDepthLimitsTree(t *testing.T) {
	X, Y := stepData()

	// Depth 0 is unbounded; depth 1 allows exactly one split.
	reg := NewDecisionTreeRegressor()
	reg.MaxDepth = 1
	if err := reg.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if reg.root.leaf {
		t.Fatal("expected one split at depth 1")
	}
	if !reg.root.left.leaf || !reg.root.right.leaf {
		t.Error("children of a depth-1 tree must be leaves")
	}
}

func TestMinSamplesLeafRespected(t *testing.T) {
	X, Y := stepData()

	reg := NewDecisionTreeRegressor()
	reg.MinSamplesLeaf = 4
	if err := reg.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	var check func(n *node) int
	check = func(n *node) int {
		if n.leaf {
			return 0
		}
		return 1 + check(n.left) + check(n.right)
	}
	// With 8 rows and a 4-row minimum per leaf, only the root split fits.
	if splits := check(reg.root); splits > 1 {
		t.Errorf("tree has %d splits, want at most 1", splits)
	}
}

func TestMultiOutputLeafValues(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 10, 11})
	Y := mat.NewDense(4, 2, []float64{
		1, 100,
		1, 100,
		3, 300,
		3, 300,
	})

	reg := NewDecisionTreeRegressor()
	if err := reg.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := reg.Predict(mat.NewDense(1, 1, []float64{0.5}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got := pred.At(0, 0); math.Abs(got-1) > 1e-9 {
		t.Errorf("output 0 = %v, want 1", got)
	}
	if got := pred.At(0, 1); math.Abs(got-100) > 1e-9 {
		t.Errorf("output 1 = %v, want 100", got)
	}
}

func TestConstantTargetYieldsSingleLeaf(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	Y := mat.NewDense(5, 1, []float64{7, 7, 7, 7, 7})

	reg := NewDecisionTreeRegressor()
	if err := reg.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !reg.root.leaf {
		t.Error("constant target should produce a single leaf")
	}
	if got := reg.root.value[0]; math.Abs(got-7) > 1e-9 {
		t.Errorf("leaf value = %v, want 7", got)
	}
}

func TestFitIndicesSubset(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{0, 1, 2, 10, 11, 12})
	Y := mat.NewDense(6, 1, []float64{5, 5, 5, 20, 20, 20})

	reg := NewDecisionTreeRegressor()
	// Bootstrap-style subset with a repeated index.
	if err := reg.FitIndices(X, Y, []int{0, 0, 1, 3, 4, 4}); err != nil {
		t.Fatalf("FitIndices() error = %v", err)
	}

	pred, err := reg.Predict(mat.NewDense(1, 1, []float64{11}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got := pred.At(0, 0); math.Abs(got-20) > 1e-9 {
		t.Errorf("prediction = %v, want 20", got)
	}
}
