package vm

import (
	"math"
	"strconv"
)

// Value is a closed union of runtime values. Numbers are the only variant so
// far; new variants implement isValue and get their own cases in the helpers
// below.
type Value interface {
	isValue()
	String() string
}

type VNum float64

func (_ VNum) isValue() {}

// String prints finite numbers in plain decimal notation with the fewest
// digits that round-trip.
func (v VNum) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// The arithmetic helpers report ok == false on operand type mismatch.

func VNeg(v Value) (res Value, ok bool) {
	switch v := v.(type) {
	case VNum:
		return -v, true
	}
	return
}

func VAdd(v, w Value) (res Value, ok bool) {
	return numBinary(v, w, func(a, b VNum) VNum { return a + b })
}

func VSub(v, w Value) (res Value, ok bool) {
	return numBinary(v, w, func(a, b VNum) VNum { return a - b })
}

func VMul(v, w Value) (res Value, ok bool) {
	return numBinary(v, w, func(a, b VNum) VNum { return a * b })
}

// VDiv follows IEEE-754: dividing by zero yields an infinity or NaN.
func VDiv(v, w Value) (res Value, ok bool) {
	return numBinary(v, w, func(a, b VNum) VNum { return a / b })
}

func numBinary(v, w Value, op func(a, b VNum) VNum) (res Value, ok bool) {
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return op(v, w), true
		}
	}
	return
}
