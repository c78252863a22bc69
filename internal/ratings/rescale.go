package ratings

import (
	"gonum.org/v1/gonum/floats"
)

// RescaleRatings maps composite scores onto the rating scale with a min-max
// affine transform: the lowest composite becomes RatingScaleMin and the
// highest RatingScaleMax. When every composite is identical there is no
// spread to rescale, and every rating becomes RatingMidpoint.
//
// Each value is divided by the spread individually rather than multiplied by
// a precomputed reciprocal, so the extremes land on exactly 0 and 100.
func RescaleRatings(composite []float64) []float64 {
	ratings := make([]float64, len(composite))
	if len(composite) == 0 {
		return ratings
	}

	min := floats.Min(composite)
	max := floats.Max(composite)

	if max == min {
		for i := range ratings {
			ratings[i] = RatingMidpoint
		}
		return ratings
	}

	spread := max - min
	for i, v := range composite {
		ratings[i] = (v - min) / spread * RatingScaleMax
	}

	return ratings
}
