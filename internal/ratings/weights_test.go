package ratings

import (
	"testing"
)

func TestWeightVectorValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights WeightVector
		wantErr bool
	}{
		{
			name:    "canonical profile weights",
			weights: WeightVector{0.25, 0.25, 0.15, 0.15, 0.10, 0.10},
			wantErr: false,
		},
		{
			name:    "single weight",
			weights: WeightVector{1.0},
			wantErr: false,
		},
		{
			name:    "sum within tolerance",
			weights: WeightVector{0.5, 0.5 + 1e-7},
			wantErr: false,
		},
		{
			name:    "sum too low",
			weights: WeightVector{0.3, 0.3},
			wantErr: true,
		},
		{
			name:    "sum too high",
			weights: WeightVector{0.7, 0.7},
			wantErr: true,
		},
		{
			name:    "negative weight",
			weights: WeightVector{1.5, -0.5},
			wantErr: true,
		},
		{
			name:    "empty",
			weights: WeightVector{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeightVectorNormalized(t *testing.T) {
	w := WeightVector{2, 1, 1}
	got := w.Normalized()

	want := WeightVector{0.5, 0.25, 0.25}
	for i := range want {
		if !almostEqual(got[i], want[i], eps) {
			t.Errorf("Normalized()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// original untouched
	if w[0] != 2 {
		t.Errorf("Normalized modified its receiver: %v", w)
	}

	if err := got.Validate(); err != nil {
		t.Errorf("normalized vector failed validation: %v", err)
	}
}

func TestWeightVectorNormalizedZeroSum(t *testing.T) {
	w := WeightVector{0, 0, 0}
	got := w.Normalized()
	for i, v := range got {
		if v != 0 {
			t.Errorf("Normalized()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNormalizedPreservesRatings(t *testing.T) {
	// Ratings depend only on relative weight ratios: scaling every weight by
	// the same positive constant rescales every composite by that constant,
	// which min-max rescaling cancels out.
	m := mustMatrix(t, []string{"a", "b", "c"}, [][]float64{
		{1.2, 30, 7},
		{0.8, 45, 3},
		{1.0, 38, 5},
		{1.4, 29, 8},
	})

	base := WeightVector{0.5, 0.3, 0.2}
	scaled := WeightVector{5, 3, 2}.Normalized()

	fromBase, err := ComputeRatings(m, base)
	if err != nil {
		t.Fatalf("ComputeRatings(base) returned error: %v", err)
	}
	fromScaled, err := ComputeRatings(m, scaled)
	if err != nil {
		t.Fatalf("ComputeRatings(scaled) returned error: %v", err)
	}

	for i := range fromBase {
		if !almostEqual(fromBase[i], fromScaled[i], 1e-9) {
			t.Errorf("rating[%d] = %v with base weights, %v with renormalized multiples", i, fromBase[i], fromScaled[i])
		}
	}
}
