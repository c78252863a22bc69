package ratings

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// standardizeColumns z-scores every column of m using the population standard
// deviation (divisor R, not R-1). A zero-variance column contributes nothing
// to differentiating players, so its z-scores become 0.0 with a warning
// rather than aborting the whole computation.
func standardizeColumns(m *mat.Dense, stats []string) *mat.Dense {
	rows, cols := m.Dims()
	z := mat.NewDense(rows, cols, nil)

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)

		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			log.Warn().Str("stat", stats[j]).Msg("zero variance after imputation, standardizing column to 0")
			continue // z column stays all zeros
		}

		floats.AddConst(-mean, col)
		floats.Scale(1.0/std, col)
		z.SetCol(j, col)
	}

	return z
}
