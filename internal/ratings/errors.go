package ratings

import "fmt"

// ShapeMismatchError reports a weight vector whose length disagrees with the
// matrix column count. A matrix with no stat columns at all is reported the
// same way.
type ShapeMismatchError struct {
	WeightLen int
	Cols      int
}

func (e *ShapeMismatchError) Error() string {
	if e.Cols == 0 {
		return "ratings: matrix has no stat columns"
	}
	return fmt.Sprintf("ratings: weight vector length %d does not match %d stat columns", e.WeightLen, e.Cols)
}

// AllMissingColumnError reports a stat column with zero recorded values. Its
// mean is undefined, so there is nothing to impute from.
type AllMissingColumnError struct {
	Stat string
}

func (e *AllMissingColumnError) Error() string {
	return fmt.Sprintf("ratings: stat %q has no recorded values to impute from", e.Stat)
}

// InsufficientDataError reports a matrix with too few player rows for
// standardization and rescaling to be meaningful.
type InsufficientDataError struct {
	Rows int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("ratings: need at least %d players, got %d", minPlayers, e.Rows)
}
