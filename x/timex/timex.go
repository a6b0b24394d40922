package timex

import "time"

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// Periods returns how many whole periods of length p fit in d.
func Periods(d, p time.Duration) int {
	if p <= 0 || d <= 0 {
		return 0
	}
	return int(d / p)
}
