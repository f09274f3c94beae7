package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrMisaligned is returned when two series do not share a time index.
var ErrMisaligned = errors.New("series are not index-aligned")

// Series is a named sequence of optional values index-aligned to a time axis.
// Transforms never mutate a Series; each produces a fresh one.
type Series struct {
	Name   string
	Times  []time.Time
	Values []Value
}

// NewSeries builds a fully defined series from raw floats. NaN entries are undefined.
func NewSeries(name string, times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, fmt.Errorf("%s: %d timestamps for %d values", name, len(times), len(values))
	}
	vs := make([]Value, len(values))
	for i, f := range values {
		vs[i] = Of(f)
	}
	return Series{Name: name, Times: append([]time.Time(nil), times...), Values: vs}, nil
}

// Len returns the number of positions.
func (s Series) Len() int { return len(s.Values) }

// At returns the value at position i.
func (s Series) At(i int) Value { return s.Values[i] }

// Last returns the final value, undefined for an empty series.
func (s Series) Last() Value {
	if len(s.Values) == 0 {
		return Undefined
	}
	return s.Values[len(s.Values)-1]
}

// DefinedCount returns how many positions carry a value.
func (s Series) DefinedCount() int {
	n := 0
	for _, v := range s.Values {
		if v.Valid {
			n++
		}
	}
	return n
}

// derive returns a series on the same time index with the given values.
func (s Series) derive(name string, values []Value) Series {
	return Series{Name: name, Times: s.Times, Values: values}
}

// Map applies fn pointwise.
func (s Series) Map(name string, fn func(Value) Value) Series {
	out := make([]Value, len(s.Values))
	for i, v := range s.Values {
		out[i] = fn(v)
	}
	return s.derive(name, out)
}

// Zip combines two aligned series pointwise.
func (s Series) Zip(name string, o Series, fn func(a, b Value) Value) (Series, error) {
	if len(s.Values) != len(o.Values) {
		return Series{}, fmt.Errorf("%s vs %s: %w", s.Name, o.Name, ErrMisaligned)
	}
	out := make([]Value, len(s.Values))
	for i := range s.Values {
		out[i] = fn(s.Values[i], o.Values[i])
	}
	return s.derive(name, out), nil
}

// Scan folds left to right: out[0] = seed(in[0]), out[i] = step(out[i-1], in[i]).
func (s Series) Scan(name string, seed func(Value) Value, step func(prev, cur Value) Value) Series {
	out := make([]Value, len(s.Values))
	for i, v := range s.Values {
		if i == 0 {
			out[0] = seed(v)
			continue
		}
		out[i] = step(out[i-1], v)
	}
	return s.derive(name, out)
}

// Diff returns the first difference; position 0 is undefined.
func (s Series) Diff(name string) Series {
	out := make([]Value, len(s.Values))
	for i := range s.Values {
		if i == 0 {
			out[i] = Undefined
			continue
		}
		out[i] = s.Values[i].Sub(s.Values[i-1])
	}
	return s.derive(name, out)
}

// Rolling applies fn to each trailing window of w defined values. Positions
// before w-1, and windows containing an undefined value, are undefined.
func (s Series) Rolling(name string, w int, fn func(window []float64) float64) Series {
	out := make([]Value, len(s.Values))
	if w > len(s.Values) {
		for i := range out {
			out[i] = Undefined
		}
		return s.derive(name, out)
	}
	buf := make([]float64, 0, w)
	for i := range s.Values {
		if i < w-1 {
			out[i] = Undefined
			continue
		}
		buf = buf[:0]
		for _, v := range s.Values[i-w+1 : i+1] {
			if !v.Valid {
				break
			}
			buf = append(buf, v.Float)
		}
		if len(buf) < w {
			out[i] = Undefined
			continue
		}
		out[i] = Of(fn(buf))
	}
	return s.derive(name, out)
}
