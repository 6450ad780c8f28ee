package speed

import (
	"math"
	"testing"
)

func TestNormalization(t *testing.T) {
	tests := []struct {
		name string
		s    Speed
		ms   float64
	}{
		{"ms passthrough", Ms(3.5), 3.5},
		{"kmph", Kmph(36.0), 10.0},
		{"kmph fractional", Kmph(12.6), 3.5},
		{"pace 2:05/500m", SecPer500m(125.0), 4.0},
		{"pace 100s", SecPer500m(100.0), 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Ms(); math.Abs(got-tt.ms) > 1e-9 {
				t.Errorf("Ms() = %v, want %v", got, tt.ms)
			}
		})
	}
}

func TestRoundTripConversions(t *testing.T) {
	s := Kmph(21.6) // 6 m/s

	if got := s.Kmph(); math.Abs(got-21.6) > 1e-9 {
		t.Errorf("Kmph() = %v, want 21.6", got)
	}
	if got := s.SecPer500m(); math.Abs(got-500.0/6.0) > 1e-9 {
		t.Errorf("SecPer500m() = %v, want %v", got, 500.0/6.0)
	}
}

func TestOrdering(t *testing.T) {
	// Pace is inverse: a smaller split is faster.
	fast := SecPer500m(100.0) // 5 m/s
	slow := SecPer500m(250.0) // 2 m/s

	if fast.Cmp(slow) != 1 {
		t.Errorf("expected %v faster than %v", fast, slow)
	}
	if slow.Cmp(fast) != -1 {
		t.Errorf("expected %v slower than %v", slow, fast)
	}
	if Ms(5.0).Cmp(SecPer500m(100.0)) != 0 {
		t.Errorf("expected 5 m/s to equal a 100s/500m split")
	}

	if !Kmph(18.0).AtLeast(Ms(5.0)) {
		t.Errorf("18 km/h should be at least 5 m/s")
	}
	if Ms(4.9).AtLeast(Ms(5.0)) {
		t.Errorf("4.9 m/s should not be at least 5 m/s")
	}
}

func TestValid(t *testing.T) {
	if !Ms(0).Valid() {
		t.Errorf("zero m/s should be valid")
	}
	if SecPer500m(0).Valid() {
		t.Errorf("zero pace should be invalid (infinite speed)")
	}
	if SecPer500m(-10).Valid() {
		t.Errorf("negative pace should be invalid")
	}
	if Ms(math.NaN()).Valid() {
		t.Errorf("NaN should be invalid")
	}
}
