package ratings

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// weightedComposite collapses each row of z into a single composite score:
// the dot product of the row's z-scores with the weight vector.
func weightedComposite(z *mat.Dense, weights WeightVector) []float64 {
	rows, _ := z.Dims()

	composite := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, z)
		composite[i] = floats.Dot(row, weights)
	}

	return composite
}
