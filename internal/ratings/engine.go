// Package ratings turns tabular player statistics into normalized 0-100
// performance ratings: mean-impute absent values, z-score each stat column,
// combine columns with a weight vector, min-max rescale the result.
package ratings

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Breakdown carries every stage output of the rating pipeline for callers
// that need more than the final ratings column.
type Breakdown struct {
	Stats     []string   // stat names, in column order
	Imputed   *mat.Dense // matrix after mean imputation
	ZScores   *mat.Dense // matrix after per-column standardization
	Composite []float64  // weighted sum of z-scores per player
	Ratings   []float64  // composite rescaled to [0, 100]
}

// ComputeRatings computes one rating per player on the
// [RatingScaleMin, RatingScaleMax] scale. Ratings are aligned with the
// matrix's row order. It is a pure function: identical inputs produce
// bit-identical output, and the input matrix is never modified.
//
// Unless every player ends up with an equal composite score, exactly one
// player rates 0 and exactly one rates 100, and rating order matches
// composite-score order.
func ComputeRatings(m *StatMatrix, weights WeightVector) ([]float64, error) {
	b, err := ComputeBreakdown(m, weights)
	if err != nil {
		return nil, err
	}
	return b.Ratings, nil
}

// ComputeBreakdown runs the four pipeline stages, impute, standardize,
// weight-sum, rescale, and returns every intermediate result. Hard errors
// return immediately with no partial output.
func ComputeBreakdown(m *StatMatrix, weights WeightVector) (*Breakdown, error) {
	if m == nil {
		return nil, fmt.Errorf("ratings: stat matrix cannot be nil")
	}

	rows, cols := m.Rows(), m.Cols()
	if cols == 0 || len(weights) != cols {
		return nil, &ShapeMismatchError{WeightLen: len(weights), Cols: cols}
	}
	if rows < minPlayers {
		return nil, &InsufficientDataError{Rows: rows}
	}

	stats := m.Stats()

	imputed, err := imputeColumnMeans(m.dense(), stats)
	if err != nil {
		return nil, err
	}

	z := standardizeColumns(imputed, stats)
	composite := weightedComposite(z, weights)

	return &Breakdown{
		Stats:     stats,
		Imputed:   imputed,
		ZScores:   z,
		Composite: composite,
		Ratings:   RescaleRatings(composite),
	}, nil
}
