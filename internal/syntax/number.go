package syntax

import (
	"math"
	"strconv"
	"strings"
)

// Number is the value of a numeric literal: a 32-bit signed integer
// or a 32-bit float, selected by Kind.
type Number struct {
	Kind  LitKind // IntLit or FloatLit
	Int   int32
	Float float32
}

// IntNumber returns an integer Number.
func IntNumber(v int32) Number {
	return Number{Kind: IntLit, Int: v}
}

// FloatNumber returns a float Number.
func FloatNumber(v float32) Number {
	return Number{Kind: FloatLit, Float: v}
}

// IsFloat reports whether n holds a float.
func (n Number) IsFloat() bool {
	return n.Kind == FloatLit
}

// String formats n the way it would be written in source.
func (n Number) String() string {
	if n.Kind == FloatLit {
		s := strconv.FormatFloat(float64(n.Float), 'g', -1, 32)
		if strings.ContainsAny(s, ".eIN") {
			return s
		}
		return s + ".0"
	}
	return strconv.FormatInt(int64(n.Int), 10)
}

// Compare orders numbers with every integer before every float, then by
// value. NaN floats sort after all other floats.
func (n Number) Compare(m Number) int {
	if n.Kind != m.Kind {
		if n.Kind == IntLit {
			return -1
		}
		return 1
	}
	if n.Kind == IntLit {
		switch {
		case n.Int < m.Int:
			return -1
		case n.Int > m.Int:
			return 1
		}
		return 0
	}
	a, b := float64(n.Float), float64(m.Float)
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	case math.IsNaN(b):
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// parseNumber converts literal text into a Number.
// ok is false when the value does not fit the 32-bit representation.
func parseNumber(lit string, kind LitKind) (n Number, ok bool) {
	if kind == FloatLit {
		f, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			return FloatNumber(0), false
		}
		return FloatNumber(float32(f)), true
	}
	i, err := strconv.ParseInt(lit, 10, 32)
	if err != nil {
		return IntNumber(0), false
	}
	return IntNumber(int32(i)), true
}
