package ratings

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// imputeColumnMeans returns a copy of m with every absent cell replaced by
// the mean of the recorded values in its column. A column with no recorded
// values has no defined mean and fails with AllMissingColumnError.
func imputeColumnMeans(m *mat.Dense, stats []string) (*mat.Dense, error) {
	rows, cols := m.Dims()
	imputed := mat.DenseCopyOf(m)

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)

		present := make([]float64, 0, rows)
		for _, v := range col {
			if !math.IsNaN(v) {
				present = append(present, v)
			}
		}

		if len(present) == 0 {
			return nil, &AllMissingColumnError{Stat: stats[j]}
		}
		if len(present) == rows {
			continue
		}

		mean := stat.Mean(present, nil)
		for i, v := range col {
			if math.IsNaN(v) {
				imputed.Set(i, j, mean)
			}
		}
	}

	return imputed, nil
}
