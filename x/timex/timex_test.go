package timex

import (
	"testing"
	"time"
)

func TestPeriodFromHz(t *testing.T) {
	if got := PeriodFromHz(128); got != 7_812_500 {
		t.Fatalf("128 Hz -> %d ns", got)
	}
	if got := PeriodFromHz(0); got != uint64(time.Second) {
		t.Fatalf("0 Hz -> %d ns", got)
	}
}

func TestPeriods(t *testing.T) {
	if got := Periods(time.Second, 125*time.Millisecond); got != 8 {
		t.Fatalf("Periods=%d", got)
	}
	if got := Periods(time.Second, 0); got != 0 {
		t.Fatalf("zero period=%d", got)
	}
}
