package ensemble

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// syntheticRegression builds a deterministic nonlinear dataset with two
// target columns.
func syntheticRegression(n int) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(7, 7))

	X := mat.NewDense(n, 3, nil)
	Y := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		a := rng.Float64() * 10
		b := rng.Float64() * 10
		c := rng.Float64() * 10
		X.Set(i, 0, a)
		X.Set(i, 1, b)
		X.Set(i, 2, c)
		Y.Set(i, 0, 2*a+b*b/10)
		Y.Set(i, 1, math.Sin(a)+c)
	}
	return X, Y
}

func TestForestFitPredict(t *testing.T) {
	X, Y := syntheticRegression(200)

	rf := NewRandomForestRegressor().WithNEstimators(20).WithSeed(1)
	if err := rf.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := rf.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	rows, cols := pred.Dims()
	if rows != 200 || cols != 2 {
		t.Errorf("prediction dims = %dx%d, want 200x2", rows, cols)
	}

	// In-sample R² of a forest on smooth data should be clearly positive.
	score, err := rf.Score(X, Y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score < 0.5 {
		t.Errorf("in-sample R² = %v, expected above 0.5", score)
	}
	if score > 1.0 {
		t.Errorf("R² = %v, must not exceed 1", score)
	}
}

func TestForestReproducibleUnderSeed(t *testing.T) {
	X, Y := syntheticRegression(150)
	probe, _ := syntheticRegression(10)

	run := func() mat.Matrix {
		rf := NewRandomForestRegressor().WithNEstimators(15).WithSeed(42)
		if err := rf.Fit(X, Y); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		pred, err := rf.Predict(probe)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		return pred
	}

	p1 := run()
	p2 := run()
	if !mat.EqualApprox(p1, p2, 0) {
		t.Error("same seed and data must reproduce identical predictions")
	}
}

func TestForestDifferentSeedsDiffer(t *testing.T) {
	X, Y := syntheticRegression(150)
	probe, _ := syntheticRegression(10)

	fit := func(seed int64) mat.Matrix {
		rf := NewRandomForestRegressor().WithNEstimators(10).WithSeed(seed)
		if err := rf.Fit(X, Y); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		pred, err := rf.Predict(probe)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		return pred
	}

	if mat.EqualApprox(fit(1), fit(2), 1e-12) {
		t.Error("different seeds should produce different forests")
	}
}

func TestForestNotFitted(t *testing.T) {
	rf := NewRandomForestRegressor()
	if _, err := rf.Predict(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("expected NotFittedError before Fit")
	}
	if _, err := rf.Score(mat.NewDense(1, 3, nil), mat.NewDense(1, 2, nil)); err == nil {
		t.Error("expected NotFittedError before Fit")
	}
}

func TestForestValidation(t *testing.T) {
	X, Y := syntheticRegression(20)

	rf := NewRandomForestRegressor().WithNEstimators(0)
	if err := rf.Fit(X, Y); err == nil {
		t.Error("expected error for zero estimators")
	}

	rf = NewRandomForestRegressor().WithMaxFeatures("log2")
	if err := rf.Fit(X, Y); err == nil {
		t.Error("expected error for unknown feature strategy")
	}

	rf = NewRandomForestRegressor()
	if err := rf.Fit(mat.NewDense(5, 3, nil), mat.NewDense(4, 2, nil)); err == nil {
		t.Error("expected error for row mismatch")
	}
}

func TestForestPredictDimensionCheck(t *testing.T) {
	X, Y := syntheticRegression(50)

	rf := NewRandomForestRegressor().WithNEstimators(5)
	if err := rf.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := rf.Predict(mat.NewDense(3, 5, nil)); err == nil {
		t.Error("expected DimensionError for wrong feature count")
	}
}

func TestForestSqrtStrategy(t *testing.T) {
	X, Y := syntheticRegression(100)

	rf := NewRandomForestRegressor().
		WithNEstimators(10).
		WithMaxFeatures(MaxFeaturesSqrt).
		WithSeed(3)
	if err := rf.Fit(X, Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	score, err := rf.Score(X, Y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score <= 0 {
		t.Errorf("in-sample R² with sqrt features = %v, expected positive", score)
	}
}

func TestResolveMaxFeatures(t *testing.T) {
	tests := []struct {
		strategy  string
		nFeatures int
		want      int
		wantErr   bool
	}{
		{strategy: MaxFeaturesAll, nFeatures: 12, want: 0},
		{strategy: "", nFeatures: 12, want: 0},
		{strategy: MaxFeaturesSqrt, nFeatures: 12, want: 4}, // ceil(sqrt(12))
		{strategy: MaxFeaturesSqrt, nFeatures: 9, want: 3},
		{strategy: "log2", nFeatures: 12, wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolveMaxFeatures(tt.strategy, tt.nFeatures)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveMaxFeatures(%q) error = %v, wantErr %v", tt.strategy, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("resolveMaxFeatures(%q, %d) = %d, want %d", tt.strategy, tt.nFeatures, got, tt.want)
		}
	}
}
