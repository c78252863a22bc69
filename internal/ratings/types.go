package ratings

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// StatMatrix is an R x C table of player statistics: one row per player, one
// column per named stat. Cells start out absent; an absent measurement is
// distinct from a recorded zero and is replaced by the column mean during
// imputation.
//
// Absent cells are held as NaN in the dense backing, which no recorded stat
// can ever be. Callers should go through SetAbsent and Absent rather than
// writing the marker themselves.
type StatMatrix struct {
	stats []string
	rows  int
	m     *mat.Dense // nil when the matrix has no cells
}

// NewStatMatrix returns a matrix with the given stat columns and row count,
// every cell absent.
func NewStatMatrix(stats []string, rows int) *StatMatrix {
	s := &StatMatrix{
		stats: append([]string(nil), stats...),
		rows:  rows,
	}
	if rows > 0 && len(stats) > 0 {
		data := make([]float64, rows*len(stats))
		for i := range data {
			data[i] = math.NaN()
		}
		s.m = mat.NewDense(rows, len(stats), data)
	}
	return s
}

// StatMatrixFromRows builds a matrix from row slices. Every row must have one
// value per stat; NaN entries are treated as absent.
func StatMatrixFromRows(stats []string, rows [][]float64) (*StatMatrix, error) {
	s := NewStatMatrix(stats, len(rows))
	for i, row := range rows {
		if len(row) != len(stats) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(stats))
		}
		for j, v := range row {
			s.Set(i, j, v)
		}
	}
	return s, nil
}

// Rows reports the number of players.
func (s *StatMatrix) Rows() int { return s.rows }

// Cols reports the number of stat columns.
func (s *StatMatrix) Cols() int { return len(s.stats) }

// Stats returns a copy of the ordered stat names.
func (s *StatMatrix) Stats() []string {
	return append([]string(nil), s.stats...)
}

// Set records a measurement. Setting NaN is equivalent to SetAbsent.
func (s *StatMatrix) Set(i, j int, v float64) {
	s.m.Set(i, j, v)
}

// SetAbsent marks a cell as having no recorded measurement.
func (s *StatMatrix) SetAbsent(i, j int) {
	s.m.Set(i, j, math.NaN())
}

// Value returns the recorded measurement at (i, j). The result is NaN for an
// absent cell; check Absent first when the distinction matters.
func (s *StatMatrix) Value(i, j int) float64 {
	return s.m.At(i, j)
}

// Absent reports whether the cell at (i, j) has no recorded measurement.
func (s *StatMatrix) Absent(i, j int) bool {
	return math.IsNaN(s.m.At(i, j))
}

// dense exposes the backing matrix to the pipeline stages. Stages copy before
// transforming, so the caller's matrix is never modified.
func (s *StatMatrix) dense() *mat.Dense {
	return s.m
}
