// Package dataset reads tabular spreadsheet data into gonum matrices.
package dataset

import (
	"strconv"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/pkg/log"
)

// Loader reads an XLSX workbook into a feature matrix X and a target
// matrix Y. Features occupy the first NumFeatures columns of the sheet
// and targets the following NumTargets columns. HeaderRows rows at the
// top of the sheet are skipped.
type Loader struct {
	NumFeatures int
	NumTargets  int
	HeaderRows  int
}

// NewLoader creates a Loader that skips a single header row.
func NewLoader(numFeatures, numTargets int) *Loader {
	return &Loader{
		NumFeatures: numFeatures,
		NumTargets:  numTargets,
		HeaderRows:  1,
	}
}

// Load reads the first sheet of the workbook at path.
// Every data cell must parse as a number; a missing file, a short row,
// or a non-numeric cell is an unrecoverable error.
func (l *Loader) Load(path string) (X, Y *mat.Dense, err error) {
	if l.NumFeatures <= 0 {
		return nil, nil, errors.NewValidationError("NumFeatures", "must be positive", l.NumFeatures)
	}
	if l.NumTargets <= 0 {
		return nil, nil, errors.NewValidationError("NumTargets", "must be positive", l.NumTargets)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: opening workbook %q", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "dataset: closing workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, errors.Newf("dataset: workbook %q has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: reading sheet %q", sheet)
	}
	if len(rows) <= l.HeaderRows {
		return nil, nil, errors.Newf("dataset: sheet %q has no data rows after skipping %d header row(s)", sheet, l.HeaderRows)
	}

	needed := l.NumFeatures + l.NumTargets
	data := rows[l.HeaderRows:]
	n := len(data)

	X = mat.NewDense(n, l.NumFeatures, nil)
	Y = mat.NewDense(n, l.NumTargets, nil)

	for i, row := range data {
		// GetRows drops trailing empty cells, so a short row means
		// missing values rather than a ragged file format.
		if len(row) < needed {
			return nil, nil, errors.Newf("dataset: row %d has %d columns, need %d", i+l.HeaderRows+1, len(row), needed)
		}
		for j := 0; j < needed; j++ {
			v, perr := strconv.ParseFloat(row[j], 64)
			if perr != nil {
				return nil, nil, errors.Wrapf(perr, "dataset: row %d column %d: cell %q is not numeric", i+l.HeaderRows+1, j+1, row[j])
			}
			if j < l.NumFeatures {
				X.Set(i, j, v)
			} else {
				Y.Set(i, j-l.NumFeatures, v)
			}
		}
	}

	logger := log.GetLoggerWithName("dataset.loader")
	logger.Info("dataset loaded",
		log.OperationKey, "load",
		log.SamplesKey, n,
		log.FeaturesKey, l.NumFeatures,
		log.TargetsKey, l.NumTargets,
	)

	return X, Y, nil
}
