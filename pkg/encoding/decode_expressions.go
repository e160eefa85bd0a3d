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
	"fmt"
	"sort"
	"strconv"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/errors"
)

// attrs wraps one node's dictionary together with the kind and location decoded so far, for diagnostics.
type attrs struct {
	obj  map[string]interface{}
	node ast.NodeValue
}

func (a *attrs) malformed(format string, args ...interface{}) error {
	kind := string(a.node.Kind)
	if kind == "" {
		kind = "expression"
	}
	return errors.New(errors.ErrorMalformedNode, &a.node, kind, fmt.Sprintf(format, args...))
}

func (a *attrs) missing(name string) error {
	return a.malformed("missing required attribute '%v'", name)
}

func (a *attrs) invalid(name string, err error) error {
	return a.malformed("attribute '%v' is invalid: %v", name, err)
}

func (a *attrs) has(name string) bool {
	v, ok := a.obj[name]
	return ok && v != nil
}

func (a *attrs) str(name string, required bool) (string, error) {
	v, ok := a.obj[name]
	if !ok || v == nil {
		if required {
			return "", a.missing(name)
		}
		return "", nil
	}
	s, err := toString(v)
	if err != nil {
		return "", a.invalid(name, err)
	}
	if s == "" && required {
		return "", a.missing(name)
	}
	return s, nil
}

func (a *attrs) boolean(name string) (bool, error) {
	if !a.has(name) {
		return false, nil
	}
	b, err := toBool(a.obj[name])
	if err != nil {
		return false, a.invalid(name, err)
	}
	return b, nil
}

func (a *attrs) integer(name string) (int, error) {
	if !a.has(name) {
		return 0, nil
	}
	i, err := toInt(a.obj[name])
	if err != nil {
		return 0, a.invalid(name, err)
	}
	return i, nil
}

// child decodes a nested node attribute.
func (a *attrs) child(name string, required bool) (ast.Node, error) {
	if !a.has(name) {
		if required {
			return nil, a.missing(name)
		}
		return nil, nil
	}
	obj, ok := a.obj[name].(map[string]interface{})
	if !ok {
		return nil, a.malformed("attribute '%v' must be an expression dictionary, not %v", name, describe(a.obj[name]))
	}
	return decodeNode(obj)
}

// arguments decodes the argument list, which may be a list or a dictionary keyed by position.
func (a *attrs) arguments() ([]ast.Node, error) {
	if !a.has(ast.ArgumentsAttribute) {
		return nil, nil
	}

	var elems []interface{}
	switch t := a.obj[ast.ArgumentsAttribute].(type) {
	case []interface{}:
		elems = t
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		// Positions must be unique and cover 0..n-1 exactly.
		elems = make([]interface{}, len(t))
		seen := make(map[int]string, len(t))
		for _, k := range keys {
			pos, err := strconv.Atoi(k)
			if err != nil || pos < 0 {
				return nil, a.malformed("argument key '%v' is not a position", k)
			}
			if prev, has := seen[pos]; has {
				return nil, a.malformed("argument keys '%v' and '%v' denote the same position", prev, k)
			}
			if pos >= len(t) {
				return nil, a.malformed("argument key '%v' is out of range; %v arguments need positions 0 to %v",
					k, len(t), len(t)-1)
			}
			seen[pos] = k
			elems[pos] = t[k]
		}
	default:
		return nil, a.malformed("attribute '%v' must be a list or a dictionary, not %v",
			ast.ArgumentsAttribute, describe(t))
	}

	args := make([]ast.Node, len(elems))
	for i, e := range elems {
		obj, ok := e.(map[string]interface{})
		if !ok {
			return nil, a.malformed("argument %v must be an expression dictionary, not %v", i, describe(e))
		}
		arg, err := decodeNode(obj)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

// method decodes a method reference, given either as a plain name or as a dictionary with a name.
func (a *attrs) method() (*ast.MethodReference, error) {
	if !a.has(ast.MethodAttribute) {
		return nil, a.missing(ast.MethodAttribute)
	}
	v := a.obj[ast.MethodAttribute]
	if obj, ok := v.(map[string]interface{}); ok {
		inner := &attrs{obj: obj, node: a.node}
		name, err := inner.str(ast.MethodNameAttribute, true)
		if err != nil {
			return nil, err
		}
		return &ast.MethodReference{Name: name}, nil
	}
	name, err := a.str(ast.MethodAttribute, true)
	if err != nil {
		return nil, err
	}
	return &ast.MethodReference{Name: name}, nil
}

// location decodes the optional source position attributes.
func (a *attrs) location() (*ast.Location, error) {
	if !a.has(ast.LineNumAttribute) {
		return nil, nil
	}
	line, err := a.integer(ast.LineNumAttribute)
	if err != nil {
		return nil, err
	}
	col, err := a.integer(ast.ColumnNumAttribute)
	if err != nil {
		return nil, err
	}
	length, err := a.integer(ast.TokenLengthAttribute)
	if err != nil {
		return nil, err
	}
	return &ast.Location{Line: line, Column: col, TokenLength: length}, nil
}

func decodeNode(obj map[string]interface{}) (ast.Node, error) {
	a := &attrs{obj: obj}
	loc, err := a.location()
	if err != nil {
		return nil, err
	}
	a.node.Loc = loc

	k, err := a.str(ast.ExpressionTypeAttribute, true)
	if err != nil {
		return nil, err
	}
	a.node.Kind = ast.NodeKind(k)

	switch a.node.Kind {
	case ast.ConstantKind:
		return decodeConstant(a)
	case ast.PropertyOrFieldKind:
		return decodePropertyOrField(a)
	case ast.InvokeKind:
		return decodeInvoke(a)
	case ast.CallKind:
		return decodeCall(a)
	case ast.ConvertKind, ast.ConvertCheckedKind:
		return decodeConvert(a)
	case ast.GroupKind:
		return decodeGroup(a)
	case ast.DefaultKind:
		typ, err := a.str(ast.TypeAttribute, false)
		if err != nil {
			return nil, err
		}
		return &ast.DefaultExpression{NodeValue: a.node, Type: typ}, nil
	case ast.TypeOfKind:
		typ, err := a.str(ast.TypeAttribute, true)
		if err != nil {
			return nil, err
		}
		return &ast.TypeOfExpression{NodeValue: a.node, Type: typ}, nil
	default:
		return nil, a.malformed("unrecognized expression type '%v'", k)
	}
}

func decodeConstant(a *attrs) (*ast.ConstantExpression, error) {
	typ, err := a.str(ast.TypeAttribute, false)
	if err != nil {
		return nil, err
	}
	value := a.obj[ast.ValueAttribute]
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return nil, a.malformed("attribute '%v' must be a scalar, not %v", ast.ValueAttribute, describe(value))
	}
	return &ast.ConstantExpression{NodeValue: a.node, Type: typ, Value: value}, nil
}

func decodePropertyOrField(a *attrs) (*ast.PropertyOrFieldExpression, error) {
	target, err := a.child(ast.ExpressionAttribute, false)
	if err != nil {
		return nil, err
	}
	name, err := a.str(ast.PropertyOrFieldNameAttribute, true)
	if err != nil {
		return nil, err
	}
	nullProp, err := a.boolean(ast.UseNullPropagationAttribute)
	if err != nil {
		return nil, err
	}
	return &ast.PropertyOrFieldExpression{
		NodeValue:          a.node,
		Expression:         target,
		Name:               name,
		UseNullPropagation: nullProp,
	}, nil
}

func decodeInvoke(a *attrs) (*ast.InvokeExpression, error) {
	callee, err := a.child(ast.ExpressionAttribute, true)
	if err != nil {
		return nil, err
	}
	args, err := a.arguments()
	if err != nil {
		return nil, err
	}
	nullProp, err := a.boolean(ast.UseNullPropagationAttribute)
	if err != nil {
		return nil, err
	}
	return &ast.InvokeExpression{
		NodeValue:          a.node,
		Expression:         callee,
		Arguments:          args,
		UseNullPropagation: nullProp,
	}, nil
}

func decodeCall(a *attrs) (*ast.CallExpression, error) {
	receiver, err := a.child(ast.ExpressionAttribute, true)
	if err != nil {
		return nil, err
	}
	method, err := a.method()
	if err != nil {
		return nil, err
	}
	args, err := a.arguments()
	if err != nil {
		return nil, err
	}
	nullProp, err := a.boolean(ast.UseNullPropagationAttribute)
	if err != nil {
		return nil, err
	}
	return &ast.CallExpression{
		NodeValue:          a.node,
		Expression:         receiver,
		Method:             method,
		Arguments:          args,
		UseNullPropagation: nullProp,
	}, nil
}

func decodeConvert(a *attrs) (*ast.ConvertExpression, error) {
	operand, err := a.child(ast.ExpressionAttribute, true)
	if err != nil {
		return nil, err
	}
	typ, err := a.str(ast.TypeAttribute, true)
	if err != nil {
		return nil, err
	}
	return &ast.ConvertExpression{NodeValue: a.node, Expression: operand, Type: typ}, nil
}

func decodeGroup(a *attrs) (*ast.GroupExpression, error) {
	inner, err := a.child(ast.ExpressionAttribute, true)
	if err != nil {
		return nil, err
	}
	return &ast.GroupExpression{NodeValue: a.node, Expression: inner}, nil
}
