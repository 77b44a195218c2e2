package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Ref[T any](t T) *T { return &t }

// ToByte narrows i to a single operand byte, reporting whether it fits.
func ToByte[I constraints.Integer](i I) (b byte, ok bool) {
	if i < 0 || uint64(i) > math.MaxUint8 {
		return 0, false
	}
	return byte(i), true
}
