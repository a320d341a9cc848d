package validate

import (
	"math"
	"reflect"
	"slices"
	"strings"
)

// Coercion helpers turn dynamically typed values (decoded YAML, keyed setters)
// into Go values. They only check the kind; range checks live below.

// Int coerces v to an int.
//
// Floating point values are rejected even when integral (5.0), and booleans
// are never treated as numbers.
func Int(param string, v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		if x > math.MaxInt || x < math.MinInt {
			return 0, Valuef(param, "%d overflows int", x)
		}
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint:
		if uint64(x) > math.MaxInt {
			return 0, Valuef(param, "%d overflows int", x)
		}
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, Valuef(param, "%d overflows int", x)
		}
		return int(x), nil
	default:
		return 0, Typef(param, "expected integer, got %s", kindOf(v))
	}
}

// Float coerces v to a float64. Integers are accepted.
func Float(param string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case bool, string, nil:
		return 0, Typef(param, "expected number, got %s", kindOf(v))
	}
	i, err := Int(param, v)
	if err != nil {
		return 0, Typef(param, "expected number, got %s", kindOf(v))
	}
	return float64(i), nil
}

// Bool coerces v to a bool. Strings such as "True" are rejected.
func Bool(param string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, Typef(param, "expected bool, got %s", kindOf(v))
	}
	return b, nil
}

// String coerces v to a string.
func String(param string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", Typef(param, "expected string, got %s", kindOf(v))
	}
	return s, nil
}

// List coerces v to a slice of elements. Strings are not lists.
func List(param string, v any) ([]any, error) {
	if v == nil {
		return nil, Typef(param, "expected list, got nil")
	}
	if l, ok := v.([]any); ok {
		return l, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, Typef(param, "expected list, got %s", kindOf(v))
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// IntVector coerces v to a list of exactly n integers.
func IntVector(param string, v any, n int) ([]int, error) {
	l, err := List(param, v)
	if err != nil {
		return nil, err
	}
	if len(l) != n {
		return nil, Typef(param, "expected %d integers, got %d elements", n, len(l))
	}
	out := make([]int, n)
	for i, e := range l {
		x, err := Int(param, e)
		if err != nil {
			return nil, Typef(param, "element %d: expected integer, got %s", i, kindOf(e))
		}
		out[i] = x
	}
	return out, nil
}

// StringList coerces v to a list of strings. A bare string is rejected.
func StringList(param string, v any) ([]string, error) {
	l, err := List(param, v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(l))
	for i, e := range l {
		s, ok := e.(string)
		if !ok {
			return nil, Typef(param, "element %d: expected string, got %s", i, kindOf(e))
		}
		out[i] = s
	}
	return out, nil
}

// Pairs coerces v to a list of numeric 2-tuples.
func Pairs(param string, v any) ([][2]float64, error) {
	l, err := List(param, v)
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, len(l))
	for i, e := range l {
		pair, err := List(param, e)
		if err != nil || len(pair) != 2 {
			return nil, Typef(param, "element %d: expected pair of numbers, got %s", i, kindOf(e))
		}
		for j, p := range pair {
			f, err := Float(param, p)
			if err != nil {
				return nil, Typef(param, "element %d: expected pair of numbers, got %s in position %d", i, kindOf(p), j)
			}
			out[i][j] = f
		}
	}
	return out, nil
}

// Positive checks that a count is strictly positive.
func Positive(param string, v int) error {
	if v <= 0 {
		return Valuef(param, "must be a positive integer, got %d", v)
	}
	return nil
}

// PositiveFloat checks that v is finite and strictly positive.
func PositiveFloat(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Valuef(param, "must be a positive number, got %v", v)
	}
	return nil
}

// NonNegative checks that v is finite and >= 0.
func NonNegative(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Valuef(param, "must be a non-negative number, got %v", v)
	}
	return nil
}

// Probability checks that v lies in the closed interval [0, 1].
func Probability(param string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return Valuef(param, "must be in [0, 1], got %v", v)
	}
	return nil
}

// Enum normalizes s to its lowercase canonical form and checks membership.
func Enum(param, s string, allowed []string) (string, error) {
	c := Canonical(s)
	if !slices.Contains(allowed, c) {
		return "", Valuef(param, "%q is not one of %s", s, strings.Join(allowed, ", "))
	}
	return c, nil
}

// Canonical lowercases and trims an enum string.
func Canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func kindOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
