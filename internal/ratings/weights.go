package ratings

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// WeightVector holds one non-negative weight per stat column, in column
// order. A valid vector sums to 1.0 so that composite scores are a convex
// combination of z-scores.
type WeightVector []float64

// Validate checks the construction-time invariants: at least one weight, no
// negative weights, and a sum of 1.0 within WeightSumTolerance. Length
// agreement with a concrete matrix is checked by ComputeRatings instead,
// since the vector alone cannot know the column count.
func (w WeightVector) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("weight vector is empty")
	}
	for i, v := range w {
		if v < 0 {
			return fmt.Errorf("weight %d is negative: %v", i, v)
		}
	}
	if sum := floats.Sum(w); math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", sum)
	}
	return nil
}

// Normalized returns a copy rescaled so the weights sum to 1.0. A vector
// whose sum is zero is returned unchanged, since there is nothing to scale
// against.
func (w WeightVector) Normalized() WeightVector {
	result := make(WeightVector, len(w))
	copy(result, w)

	sum := floats.Sum(result)
	if sum > 0 {
		floats.Scale(1.0/sum, result)
	}

	return result
}
