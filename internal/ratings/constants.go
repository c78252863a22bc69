package ratings

const (
	// RatingScaleMin and RatingScaleMax bound every rating produced by the
	// pipeline. RatingMidpoint is the value assigned to every player when all
	// composite scores are equal and min-max rescaling has no spread to work
	// with.
	RatingScaleMin = 0.0
	RatingScaleMax = 100.0
	RatingMidpoint = 50.0

	// WeightSumTolerance is how far a weight vector's sum may drift from 1.0
	// before Validate rejects it.
	WeightSumTolerance = 1e-6

	// minPlayers is the smallest row count for which z-scores and min-max
	// rescaling are meaningful.
	minPlayers = 2
)
