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

package encoding

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// normalize rewrites the maps YAML produces, which are keyed by interface{}, into string-keyed maps, recursively.
func normalize(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		obj := make(map[string]interface{}, len(t))
		for k, e := range t {
			key, err := cast.ToStringE(k)
			if err != nil {
				return nil, errors.Errorf("dictionary key %v is not a string", k)
			}
			if obj[key], err = normalize(e); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case map[string]interface{}:
		obj := make(map[string]interface{}, len(t))
		for k, e := range t {
			var err error
			if obj[k], err = normalize(e); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case []interface{}:
		arr := make([]interface{}, len(t))
		for i, e := range t {
			var err error
			if arr[i], err = normalize(e); err != nil {
				return nil, err
			}
		}
		return arr, nil
	default:
		return v, nil
	}
}

// toInt coerces a numeric attribute; strings and whole floating point numbers are accepted.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return toInt(f)
	case float64:
		if n != float64(int(n)) {
			return 0, errors.Errorf("%v is not a whole number", n)
		}
		return int(n), nil
	case string:
		i, err := cast.ToIntE(n)
		if err != nil {
			return 0, errors.Errorf("%q is not an integer", n)
		}
		return i, nil
	}
	return cast.ToIntE(v)
}

// toBool coerces a boolean attribute; "true" and "false" strings are accepted.
func toBool(v interface{}) (bool, error) {
	if n, ok := v.(json.Number); ok {
		v = string(n)
	}
	return cast.ToBoolE(v)
}

// toString coerces a textual attribute.  Only scalars qualify.
func toString(v interface{}) (string, error) {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return "", errors.Errorf("expected a string, got %v", describe(v))
	case json.Number:
		return fmt.Sprintf("%v", v), nil
	}
	return cast.ToStringE(v)
}

func describe(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return "a dictionary"
	case []interface{}:
		return "a list"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("a %T", v)
	}
}
