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

// Package encoding decodes syntax trees written in the attribute-dictionary form: each node is a dictionary whose
// "expressionType" attribute names its kind and whose other attributes hold its fields.  Documents may be JSON or YAML.
package encoding

import (
	"github.com/pkg/errors"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// Decode unmarshals a document holding a single expression tree.
func Decode(m Marshaler, b []byte) (ast.Node, error) {
	tree, err := unmarshal(m, b)
	if err != nil {
		return nil, err
	}
	obj, ok := tree.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("expected an expression dictionary at the top of the document, got %v", describe(tree))
	}
	return DecodeNode(obj)
}

// DecodeAll unmarshals a document holding either one expression tree or a list of them.
func DecodeAll(m Marshaler, b []byte) ([]ast.Node, error) {
	tree, err := unmarshal(m, b)
	if err != nil {
		return nil, err
	}

	switch t := tree.(type) {
	case map[string]interface{}:
		node, err := DecodeNode(t)
		if err != nil {
			return nil, err
		}
		return []ast.Node{node}, nil
	case []interface{}:
		nodes := make([]ast.Node, len(t))
		for i, e := range t {
			obj, ok := e.(map[string]interface{})
			if !ok {
				return nil, errors.Errorf("expression #%d: expected a dictionary, got %v", i, describe(e))
			}
			if nodes[i], err = DecodeNode(obj); err != nil {
				return nil, errors.Wrapf(err, "expression #%d", i)
			}
		}
		return nodes, nil
	default:
		return nil, errors.Errorf("expected an expression dictionary or a list of them, got %v", describe(tree))
	}
}

// DecodeNode decodes an already-parsed attribute dictionary.  Nested dictionaries may still use interface{} keys.
func DecodeNode(tree map[string]interface{}) (ast.Node, error) {
	norm, err := normalize(tree)
	if err != nil {
		return nil, err
	}
	return decodeNode(norm.(map[string]interface{}))
}

func unmarshal(m Marshaler, b []byte) (interface{}, error) {
	var tree interface{}
	if err := m.Unmarshal(b, &tree); err != nil {
		return nil, err
	}
	logging.V(7).Infof("Unmarshaled expression document (len(body)=%v)", len(b))
	return normalize(tree)
}
