package model

import (
	"math"
	"strconv"
)

// Value is an optional float64. Valid is false where a window has
// insufficient history, which keeps "not computed" apart from a computed zero.
type Value struct {
	Float float64
	Valid bool
}

// Undefined is the missing value.
var Undefined = Value{}

// Of wraps f. NaN is treated as undefined; infinities stay valid.
func Of(f float64) Value {
	if math.IsNaN(f) {
		return Undefined
	}
	return Value{Float: f, Valid: true}
}

// Float64 returns the value, or NaN when undefined.
func (v Value) Float64() float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float
}

func (v Value) Add(o Value) Value {
	if !v.Valid || !o.Valid {
		return Undefined
	}
	return Of(v.Float + o.Float)
}

func (v Value) Sub(o Value) Value {
	if !v.Valid || !o.Valid {
		return Undefined
	}
	return Of(v.Float - o.Float)
}

// Div follows IEEE 754: x/0 is ±Inf for x != 0, and 0/0 becomes undefined.
func (v Value) Div(o Value) Value {
	if !v.Valid || !o.Valid {
		return Undefined
	}
	return Of(v.Float / o.Float)
}

// Scale multiplies by a constant.
func (v Value) Scale(k float64) Value {
	if !v.Valid {
		return Undefined
	}
	return Of(v.Float * k)
}

// Map applies fn to a defined value.
func (v Value) Map(fn func(float64) float64) Value {
	if !v.Valid {
		return Undefined
	}
	return Of(fn(v.Float))
}

// String formats the value for reports; undefined prints as "NaN".
func (v Value) String() string {
	if !v.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}
