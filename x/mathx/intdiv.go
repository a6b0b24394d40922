package mathx

import "golang.org/x/exp/constraints"

// CeilDiv returns ceil(a/b) for positive operands; results for non-positive
// inputs are 0 (b <= 0) or follow truncated division (a <= 0).
func CeilDiv[T constraints.Integer](a, b T) T {
	if b <= 0 {
		return 0
	}
	if a <= 0 {
		return a / b
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
