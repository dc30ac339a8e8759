package domain

import (
	"math"
	"strconv"
)

// ValueKind distinguishes the scalar types a line can evaluate to
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	default:
		return "number"
	}
}

// Value is the scalar result of evaluating a line
type Value struct {
	Kind   ValueKind
	Number float64
	Bool   bool
}

// Number returns a numeric value
func Number(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// Bool returns a boolean value
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Interface returns the value as a plain Go scalar (float64 or bool)
func (v Value) Interface() any {
	if v.Kind == KindBool {
		return v.Bool
	}
	return v.Number
}

// Equal reports whether two values are the same scalar.
// NaN is equal to NaN so that a line stuck on NaN is not reported as changed every cycle.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == KindBool {
		return v.Bool == other.Bool
	}
	if math.IsNaN(v.Number) && math.IsNaN(other.Number) {
		return true
	}
	return v.Number == other.Number
}

func (v Value) String() string {
	if v.Kind == KindBool {
		return strconv.FormatBool(v.Bool)
	}
	return FormatNumber(v.Number)
}

// FormatNumber renders a float the way a calculator shows it:
// shortest round-trip digits, no exponent for everyday magnitudes.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if f == 0 || (abs >= 1e-7 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
