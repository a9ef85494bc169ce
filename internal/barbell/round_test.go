package barbell

import "testing"

// TestRoundWeight checks plate rounding against a range of bars and precisions.
func TestRoundWeight(t *testing.T) {
	tests := []struct {
		weight, precision, bar float64
		want                   int
	}{
		{103.5, 5, 45, 105},
		{101.5, 5, 45, 100},
		{101, 5, 33, 103},
		{102.5, 5, 45, 105},
		{260, 5, 45, 260},
		{30, 5, 45, 45},
		{45, 5, 45, 45},
		{62, 1, 20, 62},
		{61.5, 1, 20, 62},
	}
	for _, tt := range tests {
		got := RoundWeight(tt.weight, tt.precision, tt.bar)
		if got != tt.want {
			t.Errorf("RoundWeight(%v, %v, %v) = %d, want %d", tt.weight, tt.precision, tt.bar, got, tt.want)
		}
	}
}

// TestRoundWeightIdempotent verifies that rounding a rounded weight is a no-op.
func TestRoundWeightIdempotent(t *testing.T) {
	for w := 45.0; w <= 500; w += 0.5 {
		once := RoundWeight(w, DefaultPrecision, DefaultBarbellWeight)
		twice := RoundWeight(float64(once), DefaultPrecision, DefaultBarbellWeight)
		if once != twice {
			t.Fatalf("RoundWeight not idempotent at %v: %d then %d", w, once, twice)
		}
		if (once-45)%5 != 0 {
			t.Fatalf("RoundWeight(%v) = %d, not loadable in 5 lb steps", w, once)
		}
	}
}

// TestRoundWeightNeverBelowBar verifies that light weights come back as the bar.
func TestRoundWeightNeverBelowBar(t *testing.T) {
	for _, w := range []float64{0, 10, 44.9} {
		if got := RoundWeight(w, 5, 45); got != 45 {
			t.Errorf("RoundWeight(%v) = %d, want 45", w, got)
		}
	}
}
