package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25, // ((0.5)^2 * 4) / 4
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	if math.Abs(got-0.5) > 1e-10 {
		t.Errorf("MAE() = %v, want 0.5", got)
	}
}

func TestRMSENonNegative(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{10.0, -20.0, 30.0})
	yPred := mat.NewVecDense(3, []float64{-12.0, 18.0, 33.0})

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}
	if got < 0 {
		t.Errorf("RMSE() = %v, must be non-negative", got)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "mean prediction scores zero",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:    "zero variance in truth",
			yTrue:   mat.NewVecDense(3, []float64{5.0, 5.0, 5.0}),
			yPred:   mat.NewVecDense(3, []float64{4.0, 5.0, 6.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if math.Abs(got-tt.want) > tt.tolerance {
					t.Errorf("R2Score() = %v, want %v", got, tt.want)
				}
				if got > 1.0 {
					t.Errorf("R2Score() = %v, must not exceed 1", got)
				}
			}
		})
	}
}

func TestR2ScoreCanBeNegative(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{10.0, -10.0, 10.0, -10.0})

	got, err := R2Score(yTrue, yPred)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if got >= 0 {
		t.Errorf("R2Score() = %v, expected negative for a bad fit", got)
	}
}

func TestMatrixMetricsMultiOutput(t *testing.T) {
	// Two target columns. Column 0 is off by 1 everywhere, column 1 is exact.
	yTrue := mat.NewDense(3, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
	})
	yPred := mat.NewDense(3, 2, []float64{
		2.0, 10.0,
		3.0, 20.0,
		4.0, 30.0,
	})

	mae, err := MAEMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAEMatrix() error = %v", err)
	}
	if math.Abs(mae-0.5) > 1e-10 {
		t.Errorf("MAEMatrix() = %v, want 0.5 (uniform average of 1.0 and 0.0)", mae)
	}

	rmse, err := RMSEMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSEMatrix() error = %v", err)
	}
	if math.Abs(rmse-math.Sqrt(0.5)) > 1e-10 {
		t.Errorf("RMSEMatrix() = %v, want sqrt(0.5)", rmse)
	}

	r2, err := R2ScoreMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("R2ScoreMatrix() error = %v", err)
	}
	if r2 > 1.0 {
		t.Errorf("R2ScoreMatrix() = %v, must not exceed 1", r2)
	}
}

func TestMatrixMetricsShapeChecks(t *testing.T) {
	yTrue := mat.NewDense(3, 2, nil)
	yPred := mat.NewDense(3, 3, nil)

	if _, err := MAEMatrix(yTrue, yPred); err == nil {
		t.Error("expected error for column mismatch")
	}
	if _, err := MSEMatrix(mat.NewDense(2, 2, nil), mat.NewDense(3, 2, nil)); err == nil {
		t.Error("expected error for row mismatch")
	}
}
