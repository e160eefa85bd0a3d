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

// Package binder turns syntax trees into bound, strongly typed expressions: it resolves names and members, selects
// overloads by conversion quality, and inserts the conversions the selected members need.
package binder

import (
	"fmt"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/bound"
	"github.com/pulumi/dynexpr/pkg/compiler/errors"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// Bind binds any syntax node.  If expected is non-nil, the result is implicitly converted to it.
func Bind(node ast.Node, ctx *Context, expected *symbols.Type) (bound.Expression, error) {
	expr, err := bind(node, ctx, expected)
	if err != nil {
		return nil, err
	}
	return coerce(ctx, node, expr, expected)
}

// bind dispatches on the node kind.  The result has its natural type; expected only informs nodes whose type would
// otherwise be unknown, like an untyped default(...).
func bind(node ast.Node, ctx *Context, expected *symbols.Type) (bound.Expression, error) {
	if node == nil {
		return nil, errors.New(errors.ErrorMalformedNode, nil, "expression", "a required expression is missing")
	}
	if logging.V(9) {
		logging.V(9).Infof("Binding %v node %v", node.GetKind(), ast.Format(node))
	}

	switch n := node.(type) {
	case *ast.ConstantExpression:
		return bindConstant(n, ctx)
	case *ast.PropertyOrFieldExpression:
		return bindPropertyOrField(n, ctx)
	case *ast.InvokeExpression:
		return tryBindInvocation(n, ctx)
	case *ast.CallExpression:
		expr, _, err := bindCall(n, ctx)
		return expr, err
	case *ast.ConvertExpression:
		return bindConvert(n, ctx)
	case *ast.GroupExpression:
		if n.Expression == nil {
			return nil, malformed(n, ast.ExpressionAttribute)
		}
		return bind(n.Expression, ctx, expected)
	case *ast.DefaultExpression:
		return bindDefault(n, ctx, expected)
	case *ast.TypeOfExpression:
		t, err := bindTypeReference(n, n.Type, ctx)
		if err != nil {
			return nil, err
		}
		return bound.NewTypeOf(n, t), nil
	case *boundReceiver:
		return n.Expr, nil
	case *typeReceiver:
		return bound.NewTypeReference(n, n.Type), nil
	default:
		return nil, errors.New(errors.ErrorMalformedNode, node, node.GetKind(), "unrecognized expression kind")
	}
}

// malformed reports a node that lacks a required attribute.
func malformed(node ast.Node, attr string) error {
	return errors.New(errors.ErrorMalformedNode, node, node.GetKind(),
		fmt.Sprintf("missing required attribute '%v'", attr))
}

// bindTypeReference resolves a textual type reference found on node.
func bindTypeReference(node ast.Node, ref string, ctx *Context) (*symbols.Type, error) {
	if ref == "" {
		return nil, malformed(node, ast.TypeAttribute)
	}
	t, ok := ctx.resolveType(ref)
	if !ok {
		return nil, errors.New(errors.ErrorTypeNotFound, node, ref)
	}
	return t, nil
}

func bindConstant(node *ast.ConstantExpression, ctx *Context) (bound.Expression, error) {
	if node.Type == "" {
		t, v, err := inferConstantType(node.Value)
		if err != nil {
			return nil, errors.New(errors.ErrorIllegalConstant, node, node.Value, "?", err)
		}
		return bound.NewConstant(node, t, v), nil
	}

	t, err := bindTypeReference(node, node.Type, ctx)
	if err != nil {
		return nil, err
	}
	v, err := coerceConstant(node.Value, t)
	if err != nil {
		return nil, errors.New(errors.ErrorIllegalConstant, node, node.Value, t, err)
	}
	if v == nil {
		// A typed null is the null literal converted to its declared type.
		return bound.NewConvert(node, bound.NewConstant(node, symbols.Null, nil), bound.NullConversion, nil, t), nil
	}
	return bound.NewConstant(node, t, v), nil
}

func bindDefault(node *ast.DefaultExpression, ctx *Context, expected *symbols.Type) (bound.Expression, error) {
	if node.Type == "" {
		if expected == nil {
			return nil, errors.New(errors.ErrorMalformedNode, node, node.GetKind(),
				"no type was given and none is expected here")
		}
		return bound.NewDefault(node, expected), nil
	}
	t, err := bindTypeReference(node, node.Type, ctx)
	if err != nil {
		return nil, err
	}
	return bound.NewDefault(node, t), nil
}

// bindConvert binds an explicit cast.  Any catalog entry, including explicit-only ones, makes the cast legal.
func bindConvert(node *ast.ConvertExpression, ctx *Context) (bound.Expression, error) {
	if node.Expression == nil {
		return nil, malformed(node, ast.ExpressionAttribute)
	}
	t, err := bindTypeReference(node, node.Type, ctx)
	if err != nil {
		return nil, err
	}
	operand, err := bind(node.Expression, ctx, t)
	if err != nil {
		return nil, err
	}

	from := operand.Type()
	if from == t {
		return operand, nil
	}
	conv, ok := ctx.Catalog.Resolve(from, t)
	if !ok {
		return nil, errors.New(errors.ErrorInvalidCast, node, from, t)
	}
	kind, op := conversionKind(from, t, conv)
	result := bound.NewConvert(node, operand, kind, op, t)
	result.Checked = node.GetKind() == ast.ConvertCheckedKind
	return result, nil
}

// bindPropertyOrField binds a load of a named value: a parameter or global member when there is no target, a static
// member when the target names a type, and an instance member otherwise.
func bindPropertyOrField(node *ast.PropertyOrFieldExpression, ctx *Context) (bound.Expression, error) {
	if node.Name == "" {
		return nil, malformed(node, ast.PropertyOrFieldNameAttribute)
	}

	if node.Expression == nil {
		if p, ok := ctx.Parameters.Lookup(node.Name); ok {
			return bound.NewParameter(node, p.Name, p.Typ), nil
		}
		if ctx.Global != nil {
			if m := findValueMember(ctx.Global.Type(), node.Name, false); m != nil {
				return bound.NewMemberAccess(node, ctx.Global, m, false), nil
			}
		}
		return nil, errors.New(errors.ErrorNameNotResolved, node, node.Name, nameHint(ctx, node.Name))
	}

	receiver, static, err := bindReceiver(node.Expression, ctx)
	if err != nil {
		return nil, err
	}
	t := receiver.Type()
	m := findValueMember(t, node.Name, static)
	if m == nil {
		return nil, memberNotFound(node, t, node.Name, static, true)
	}
	if static {
		return bound.NewMemberAccess(node, nil, m, false), nil
	}
	return bound.NewMemberAccess(node, receiver, m, node.UseNullPropagation), nil
}

// bindReceiver binds the target of a member access or call.  A target that names a type makes the access static;
// already-bound and type receivers synthesized by the invocation binder are taken as they are.
func bindReceiver(node ast.Node, ctx *Context) (bound.Expression, bool, error) {
	switch n := node.(type) {
	case *typeReceiver:
		return bound.NewTypeReference(n, n.Type), true, nil
	case *boundReceiver:
		_, static := n.Expr.(*bound.TypeReference)
		return n.Expr, static, nil
	}

	if ref, ok := ast.TryGetTypeReference(node); ok {
		if t, ok := ctx.resolveType(ref); ok {
			if _, param := ctx.Parameters.Lookup(ref); !param {
				return bound.NewTypeReference(node, t), true, nil
			}
		}
	}
	expr, err := bind(node, ctx, nil)
	if err != nil {
		return nil, false, err
	}
	ctx.Catalog.Register(expr.Type())
	return expr, false, nil
}

// findValueMember finds the property or field a member access refers to; the most derived declaration wins.
func findValueMember(t *symbols.Type, name string, static bool) *symbols.Member {
	for _, m := range t.GetMembers(name) {
		if m.IsValue() && m.Static == static {
			return m
		}
	}
	return nil
}

func nameHint(ctx *Context, name string) string {
	if ctx.Global == nil {
		return "; it is not a parameter and no global receiver is configured"
	}
	return fmt.Sprintf("; it is neither a parameter nor a member of '%v'", ctx.Global.Type())
}

// boundReceiver is a synthesized syntax node standing for an expression that has already been bound, so that a call
// node can be built around a receiver without binding it twice.
type boundReceiver struct {
	ast.NodeValue
	Expr bound.Expression
}

// typeReceiver is a synthesized syntax node standing for a resolved type; calls on it are static.
type typeReceiver struct {
	ast.NodeValue
	Type *symbols.Type
}

const (
	boundReceiverKind ast.NodeKind = "BoundReceiver"
	typeReceiverKind  ast.NodeKind = "TypeReceiver"
)

var _ ast.Node = (*boundReceiver)(nil)
var _ ast.Node = (*typeReceiver)(nil)

func newBoundReceiver(syntax ast.Node, expr bound.Expression) *boundReceiver {
	return &boundReceiver{ast.NodeValue{Kind: boundReceiverKind, Loc: locOf(syntax)}, expr}
}

func newTypeReceiver(syntax ast.Node, t *symbols.Type) *typeReceiver {
	return &typeReceiver{ast.NodeValue{Kind: typeReceiverKind, Loc: locOf(syntax)}, t}
}

func (n *boundReceiver) String() string { return n.Expr.String() }
func (n *typeReceiver) String() string  { return n.Type.Name() }

func locOf(node ast.Node) *ast.Location {
	if node == nil {
		return nil
	}
	return node.GetLoc()
}
