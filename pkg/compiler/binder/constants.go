// Copyright 2016-2020, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package binder

import (
	"encoding/json"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
)

// inferConstantType picks the static type of an untyped literal from its Go representation.  Integers without an
// explicit width become int32 when they fit and int64 otherwise.
func inferConstantType(v interface{}) (*symbols.Type, interface{}, error) {
	switch n := v.(type) {
	case nil:
		return symbols.Null, nil, nil
	case bool:
		return symbols.Bool, n, nil
	case string:
		return symbols.String, n, nil
	case int8:
		return symbols.Int8, n, nil
	case uint8:
		return symbols.Uint8, n, nil
	case int16:
		return symbols.Int16, n, nil
	case uint16:
		return symbols.Uint16, n, nil
	case int32:
		return symbols.Int32, n, nil
	case uint32:
		return symbols.Uint32, n, nil
	case int64:
		return symbols.Int64, n, nil
	case uint64:
		return symbols.Uint64, n, nil
	case int:
		return inferInteger(int64(n))
	case uint:
		if n <= math.MaxUint32 {
			return symbols.Uint32, uint32(n), nil
		}
		return symbols.Uint64, uint64(n), nil
	case float32:
		return symbols.Float32, n, nil
	case float64:
		return symbols.Float64, n, nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return inferInteger(i)
		}
		f, err := n.Float64()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "malformed number %v", n)
		}
		return symbols.Float64, f, nil
	default:
		return nil, nil, errors.Errorf("literals of Go type %T are not supported", v)
	}
}

func inferInteger(n int64) (*symbols.Type, interface{}, error) {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return symbols.Int32, int32(n), nil
	}
	return symbols.Int64, n, nil
}

// coerceConstant converts a literal to the Go representation of t, failing if the value cannot be represented.
func coerceConstant(v interface{}, t *symbols.Type) (interface{}, error) {
	if v == nil {
		if t.IsReferenceType() || t.IsNullable() {
			return nil, nil
		}
		return nil, errors.Errorf("null is not a value of type %v", t)
	}

	switch {
	case t.IsEnum() || t.IsNullable():
		return coerceConstant(v, t.UnderlyingType())
	case t == symbols.Object:
		_, val, err := inferConstantType(v)
		return val, err
	case t == symbols.Bool:
		return cast.ToBoolE(v)
	case t == symbols.String:
		return cast.ToStringE(v)
	case t == symbols.Char:
		return coerceChar(v)
	case t == symbols.Float32:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
			return nil, errors.Errorf("%v is out of range", f)
		}
		return float32(f), nil
	case t == symbols.Float64:
		return toFloat64(v)
	case symbols.IsIntegral(t):
		return coerceIntegral(v, t)
	default:
		return nil, errors.Errorf("only null literals are values of type %v", t)
	}
}

func coerceChar(v interface{}) (interface{}, error) {
	if s, ok := v.(string); ok {
		if utf8.RuneCountInString(s) != 1 {
			return nil, errors.Errorf("%q is not a single character", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	n, err := coerceIntegral(v, symbols.Uint16)
	if err != nil {
		return nil, err
	}
	return rune(n.(uint16)), nil
}

// integralRanges holds the bounds of each integral type; unsigned types are checked separately above zero.
var integralRanges = map[*symbols.Type]struct {
	min int64
	max uint64
}{
	symbols.Int8:   {math.MinInt8, math.MaxInt8},
	symbols.Uint8:  {0, math.MaxUint8},
	symbols.Int16:  {math.MinInt16, math.MaxInt16},
	symbols.Uint16: {0, math.MaxUint16},
	symbols.Int32:  {math.MinInt32, math.MaxInt32},
	symbols.Uint32: {0, math.MaxUint32},
	symbols.Int64:  {math.MinInt64, math.MaxInt64},
	symbols.Uint64: {0, math.MaxUint64},
}

func coerceIntegral(v interface{}, t *symbols.Type) (interface{}, error) {
	neg, mag, err := toInteger(v)
	if err != nil {
		return nil, err
	}
	r := integralRanges[t]
	if neg {
		if r.min == 0 || mag > uint64(-(r.min+1))+1 {
			return nil, errors.Errorf("-%v is out of range", mag)
		}
	} else if mag > r.max {
		return nil, errors.Errorf("%v is out of range", mag)
	}

	var signed int64
	if neg {
		signed = -int64(mag-1) - 1
	} else {
		signed = int64(mag)
	}
	switch t {
	case symbols.Int8:
		return int8(signed), nil
	case symbols.Uint8:
		return uint8(mag), nil
	case symbols.Int16:
		return int16(signed), nil
	case symbols.Uint16:
		return uint16(mag), nil
	case symbols.Int32:
		return int32(signed), nil
	case symbols.Uint32:
		return uint32(mag), nil
	case symbols.Int64:
		return signed, nil
	default:
		return mag, nil
	}
}

// toInteger splits an integral literal into its sign and magnitude, so that the full ranges of both int64 and uint64
// can be represented.  Floating point literals must be whole numbers.
func toInteger(v interface{}) (bool, uint64, error) {
	switch n := v.(type) {
	case uint64:
		return false, n, nil
	case uint:
		return false, uint64(n), nil
	case uint32:
		return false, uint64(n), nil
	case float32:
		return toInteger(float64(n))
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return false, 0, errors.Errorf("%v is not a whole number", n)
		}
		if n < 0 {
			if n < math.MinInt64 {
				return false, 0, errors.Errorf("%v is out of range", n)
			}
			return true, uint64(-(int64(n) + 1)) + 1, nil
		}
		if n >= math.MaxUint64 {
			return false, 0, errors.Errorf("%v is out of range", n)
		}
		return false, uint64(n), nil
	case json.Number:
		return toInteger(string(n))
	case string:
		if u, err := cast.ToUint64E(n); err == nil && n != "" && n[0] != '-' {
			return false, u, nil
		}
		i, err := cast.ToInt64E(n)
		if err != nil {
			return false, 0, errors.Errorf("%q is not an integer", n)
		}
		return toInteger(i)
	case bool:
		return false, 0, errors.New("booleans are not integers")
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return false, 0, err
	}
	if i < 0 {
		return true, uint64(-(i + 1)) + 1, nil
	}
	return false, uint64(i), nil
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case bool:
		return 0, errors.New("booleans are not numbers")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Errorf("%v is not a number", v)
	}
	return f, nil
}
