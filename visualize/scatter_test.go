package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPredictionScatter(t *testing.T) {
	actual := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	predicted := mat.NewDense(4, 1, []float64{1.1, 1.9, 3.2, 3.8})

	p, err := PredictionScatter(actual, predicted, "panel")
	if err != nil {
		t.Fatalf("PredictionScatter() error = %v", err)
	}
	if p.Title.Text != "panel" {
		t.Errorf("title = %q", p.Title.Text)
	}
}

func TestPredictionScatterErrors(t *testing.T) {
	if _, err := PredictionScatter(mat.NewDense(3, 1, nil), mat.NewDense(2, 1, nil), ""); err == nil {
		t.Error("expected error for row mismatch")
	}
	if _, err := PredictionScatter(&mat.Dense{}, &mat.Dense{}, ""); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestSaveComparisonWritesPNG(t *testing.T) {
	actual := mat.NewDense(5, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
		5, 50,
	})
	predicted := mat.NewDense(5, 2, []float64{
		1.2, 11,
		1.8, 19,
		3.1, 29,
		4.2, 41,
		4.9, 52,
	})

	path := filepath.Join(t.TempDir(), "comparison.png")
	if err := SaveComparison(actual, predicted, actual, predicted, path); err != nil {
		t.Fatalf("SaveComparison() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}
