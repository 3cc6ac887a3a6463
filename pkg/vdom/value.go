package vdom

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind discriminates the scalar types an attribute can hold.
type ValueKind uint8

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
)

// Value is a string, number or boolean scalar.
// The zero Value is the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{kind: ValueNumber, num: n} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// Kind returns the scalar type of v.
func (v Value) Kind() ValueKind { return v.kind }

// String returns the canonical string form of v: booleans as true/false,
// numbers as FormatNumber prints them.
func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		return FormatNumber(v.num)
	case ValueBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == ValueNumber
}

// Bool returns the boolean payload and whether v is a boolean.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == ValueBool
}

// Equal reports whether v and o hold the same type and payload.
// NaN numbers are equal to each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case ValueBool:
		return v.b == o.b
	default:
		return v.str == o.str
	}
}

// Node returns v as a text-like node.
func (v Value) Node() *Node {
	switch v.kind {
	case ValueNumber:
		return Number(v.num)
	case ValueBool:
		return Boolean(v.b)
	default:
		return Text(v.str)
	}
}

// FormatNumber formats n the way ECMAScript's Number#toString does:
// shortest round-trip digits, plain notation for 1e-6 <= |n| < 1e21 and
// exponent notation outside it.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}

	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		// strconv pads the exponent to two digits ("1e-07").
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
