package mathx

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0, -1, 1, 0},
		{5, -1, 1, 1},
		{-5, -1, 1, -1},
		{5, 1, -1, 1}, // swapped bounds
		{40000, math.MinInt16, math.MaxInt16, math.MaxInt16},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("Clamp(%v,%v,%v)=%v want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	if got := CeilDiv(17, 4); got != 5 {
		t.Fatalf("CeilDiv(17,4)=%d", got)
	}
	if got := CeilDiv(16, 4); got != 4 {
		t.Fatalf("CeilDiv(16,4)=%d", got)
	}
	if got := CeilDiv(int64(1), 0); got != 0 {
		t.Fatalf("CeilDiv by zero=%d", got)
	}
	if got := CeilDiv(uint8(250), 100); got != 3 {
		t.Fatalf("CeilDiv(uint8)=%d", got)
	}
}
