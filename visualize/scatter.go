// Package visualize renders diagnostic plots for regression results.
package visualize

import (
	"image/color"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/pkg/log"
)

// PredictionScatter builds a single actual-vs-predicted panel for the
// first target column, with a 45° identity line spanning the data range.
// A perfect model puts every point on the line.
func PredictionScatter(actual, predicted mat.Matrix, title string) (*plot.Plot, error) {
	rows, _ := actual.Dims()
	pRows, _ := predicted.Dims()
	if rows == 0 {
		return nil, errors.NewValueError("PredictionScatter", "empty data")
	}
	if rows != pRows {
		return nil, errors.NewDimensionError("PredictionScatter", rows, pRows, 0)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"

	pts := make(plotter.XYs, rows)
	lo, hi := actual.At(0, 0), actual.At(0, 0)
	for i := 0; i < rows; i++ {
		a := actual.At(i, 0)
		pr := predicted.At(i, 0)
		pts[i].X = a
		pts[i].Y = pr
		for _, v := range []float64{a, pr} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "visualize: building scatter")
	}
	s.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	s.Radius = vg.Points(2)
	p.Add(s)

	identity := plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}}
	l, err := plotter.NewLine(identity)
	if err != nil {
		return nil, errors.Wrap(err, "visualize: building identity line")
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(l)

	return p, nil
}

// SaveComparison renders the train and test panels side by side and
// writes the image as PNG to path.
func SaveComparison(trainActual, trainPred, testActual, testPred mat.Matrix, path string) error {
	trainPanel, err := PredictionScatter(trainActual, trainPred, "Train: actual vs predicted")
	if err != nil {
		return err
	}
	testPanel, err := PredictionScatter(testActual, testPred, "Test: actual vs predicted")
	if err != nil {
		return err
	}

	img := vgimg.New(10*vg.Inch, 5*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	panels := [][]*plot.Plot{{trainPanel, testPanel}}
	canvases := plot.Align(panels, tiles, dc)
	trainPanel.Draw(canvases[0][0])
	testPanel.Draw(canvases[0][1])

	w, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "visualize: creating %q", path)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "visualize: encoding PNG")
	}

	log.GetLoggerWithName("visualize").Info("comparison plot saved", "path", path)
	return nil
}
