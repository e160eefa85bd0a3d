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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/bound"
	"github.com/pulumi/dynexpr/pkg/compiler/errors"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/compiler/types"
	"github.com/pulumi/dynexpr/pkg/diag"
)

type fixture struct {
	ctx       *Context
	universe  *symbols.Universe
	calc      *symbols.Type
	shape     *symbols.Type
	point     *symbols.Type
	meters    *symbols.Type
	color     *symbols.Type
	transform *symbols.Type
}

func newFixture(t *testing.T) *fixture {
	u := symbols.NewUniverse()

	shape := symbols.NewClassType("Geometry.Shape", nil)
	shape.AddMember(symbols.NewMethod("Area", false, symbols.Float64))
	shape.AddMember(symbols.NewProperty("Name", false, symbols.String))
	point := symbols.NewClassType("Geometry.Point", shape)
	point.AddMember(symbols.NewMethod("Area", false, symbols.Float64))
	point.AddMember(symbols.NewProperty("X", false, symbols.Float64))
	point.AddMember(symbols.NewField("Origin", true, point))
	point.AddMember(symbols.NewMethod("Distance", true, symbols.Float64,
		symbols.NewParameter("a", point), symbols.NewParameter("b", point)))

	meters := symbols.NewClassType("Meters", nil)
	meters.AddMember(symbols.NewConversion(true, meters, symbols.Float64))
	meters.AddMember(symbols.NewConversion(false, symbols.Float64, meters))

	color := symbols.NewEnumType("Color", symbols.Int32)
	transform := symbols.NewNamedDelegateType("Transform", []*symbols.Type{symbols.Float64}, symbols.Float64)

	calc := symbols.NewClassType("Calc", nil)
	param := symbols.NewParameter
	calc.AddMember(symbols.NewMethod("F", false, symbols.Int32, param("x", symbols.Int32)))
	calc.AddMember(symbols.NewMethod("F", false, symbols.Float64, param("x", symbols.Float64)))
	calc.AddMember(symbols.NewMethod("G", false, symbols.Float64, param("x", symbols.Float64)))
	calc.AddMember(symbols.NewMethod("Round", false, symbols.Int64, param("x", symbols.Float32)))
	calc.AddMember(symbols.NewMethod("Round", false, symbols.Int64, param("x", symbols.Float64)))
	calc.AddMember(symbols.NewMethod("H", false, nil, param("a", symbols.Int64), param("b", symbols.Int32)))
	calc.AddMember(symbols.NewMethod("H", false, nil, param("a", symbols.Int32), param("b", symbols.Int64)))
	calc.AddMember(symbols.NewMethod("N", false, symbols.Int8, param("x", symbols.Int8)))
	calc.AddMember(symbols.NewMethod("Opt", false, symbols.Int32,
		param("a", symbols.Int32), symbols.NewOptionalParameter("b", symbols.Int32, 10)))
	calc.AddMember(symbols.NewMethod("Sum", false, symbols.Int32,
		param("label", symbols.String), symbols.NewVariadicParameter("values", symbols.Int32)))
	calc.AddMember(symbols.NewMethod("Describe", false, symbols.String, param("s", shape)))
	calc.AddMember(symbols.NewMethod("Describe", false, symbols.String, param("o", symbols.Object)))
	calc.AddMember(symbols.NewMethod("Paint", false, symbols.String, param("c", color)))
	calc.AddMember(symbols.NewMethod("Check", false, symbols.Bool,
		param("v", symbols.NewNullableType(symbols.Int32))))
	calc.AddMember(symbols.NewMethod("Max", true, symbols.Int32, param("a", symbols.Int32), param("b", symbols.Int32)))
	calc.AddMember(symbols.NewProperty("Total", false, symbols.Int32))
	calc.AddMember(symbols.NewProperty("Scale", false, transform))

	for _, typ := range []*symbols.Type{shape, point, meters, color, transform, calc} {
		require.NoError(t, u.Declare(typ))
	}

	ctx := NewContext(types.NewCatalog(), u)
	ctx.SetGlobal("calc", calc)
	ctx.DeclareParameter("p", point)
	ctx.DeclareParameter("m", meters)
	ctx.DeclareParameter("n", symbols.Int32)
	ctx.DeclareParameter("f", transform)
	ctx.DeclareParameter("c", color)
	ctx.DeclareParameter("arr", symbols.NewArrayType(symbols.Int32))

	return &fixture{
		ctx:       ctx,
		universe:  u,
		calc:      calc,
		shape:     shape,
		point:     point,
		meters:    meters,
		color:     color,
		transform: transform,
	}
}

func lit(v interface{}) *ast.ConstantExpression { return ast.NewConstant(v, "") }

func ref(name string) *ast.PropertyOrFieldExpression { return ast.NewPropertyOrField(nil, name) }

func member(target ast.Node, name string) *ast.PropertyOrFieldExpression {
	return ast.NewPropertyOrField(target, name)
}

func call(name string, args ...ast.Node) *ast.InvokeExpression {
	return ast.NewInvoke(ref(name), args...)
}

func at(node *ast.InvokeExpression, line, col int) *ast.InvokeExpression {
	node.Loc = &ast.Location{Line: line, Column: col, TokenLength: 1}
	return node
}

func requireCall(t *testing.T) func(expr bound.Expression, err error) *bound.Call {
	return func(expr bound.Expression, err error) *bound.Call {
		require.NoError(t, err)
		c, ok := expr.(*bound.Call)
		require.True(t, ok, "expected a call, got %T", expr)
		return c
	}
}

func assertBindingError(t *testing.T, err error, d *diag.Diag) *errors.BindingError {
	require.Error(t, err)
	be, ok := errors.AsBindingError(err)
	require.True(t, ok, "expected a binding error, got %v", err)
	assert.Equal(t, d.ID, be.ID(), be.Error())
	return be
}

func TestExactMatchBeatsWidening(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("F", lit(1)), fx.ctx, nil))
	assert.Equal(t, symbols.Int32, c.Method.Parameters[0].Type)
	assert.Equal(t, symbols.Int32, c.Type())
	assert.Equal(t, fx.ctx.Global, c.Receiver)
	_, isConst := c.Arguments[0].(*bound.Constant)
	assert.True(t, isConst)

	c = requireCall(t)(TryBindInvocation(call("F", lit(1.5)), fx.ctx, nil))
	assert.Equal(t, symbols.Float64, c.Method.Parameters[0].Type)
}

func TestWideningConversion(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("G", lit(1)), fx.ctx, nil))
	conv, ok := c.Arguments[0].(*bound.Convert)
	require.True(t, ok)
	assert.Equal(t, bound.NumericConversion, conv.Kind)
	assert.Equal(t, symbols.Float64, conv.Type())
	assert.Equal(t, symbols.Int32, conv.Operand.Type())
	assert.Equal(t, "calc.G((float64)1)", c.String())
}

func TestWideningPrefersNarrowerTarget(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	// Both overloads widen the argument equally; float32 is the more specific parameter type.
	c := requireCall(t)(TryBindInvocation(call("Round", lit(1)), fx.ctx, nil))
	assert.Equal(t, symbols.Float32, c.Method.Parameters[0].Type)
	assert.Equal(t, "calc.Round((float32)1)", c.String())

	c = requireCall(t)(TryBindInvocation(call("Round", lit(int64(1))), fx.ctx, nil))
	assert.Equal(t, symbols.Float32, c.Method.Parameters[0].Type)
}

func TestNoApplicableOverload(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := TryBindInvocation(at(call("F", lit("s")), 2, 5), fx.ctx, nil)
	be := assertBindingError(t, err, errors.ErrorNoApplicableOverload)
	if assert.NotNil(t, be.Reasons) {
		assert.Len(t, be.Reasons.Errors, 2)
	}
	assert.Contains(t, be.Error(), "(2,5): No overload of 'Calc.F' accepts arguments (string)")
	assert.Equal(t, 2, be.Where().Start.Line)
}

func TestMemberNotFound(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := Bind(member(ref("p"), "DoesNotExist"), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMemberNotFound)

	_, err = TryBindInvocation(ast.NewInvoke(member(ref("p"), "DoesNotExist")), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMemberNotFound)

	_, err = Bind(member(lit("abc"), "Lenght"), fx.ctx, nil)
	be := assertBindingError(t, err, errors.ErrorMemberNotFound)
	assert.Contains(t, be.Message(), "did you mean 'Length'?")

	// Methods are not values, and static members need a type receiver.
	_, err = Bind(member(ref("p"), "Area"), fx.ctx, nil)
	be = assertBindingError(t, err, errors.ErrorMemberNotFound)
	assert.Contains(t, be.Message(), "must be invoked")
	_, err = TryBindInvocation(ast.NewInvoke(member(ref("p"), "Distance"), ref("p"), ref("p")), fx.ctx, nil)
	be = assertBindingError(t, err, errors.ErrorMemberNotFound)
	assert.Contains(t, be.Message(), "is static")
}

func TestCannotInvokeNonDelegate(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := TryBindInvocation(call("n"), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorCannotInvokeNonDelegate)

	_, err = TryBindInvocation(ast.NewInvoke(lit(5)), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorCannotInvokeNonDelegate)

	// A property of a non-delegate type is found by the fallback, which then can't invoke it.
	_, err = TryBindInvocation(call("Total", lit(1)), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorCannotInvokeNonDelegate)
}

func TestDelegateInvocation(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("f", lit(2)), fx.ctx, nil))
	assert.Equal(t, symbols.DelegateInvokeName, c.Method.Name)
	assert.Equal(t, fx.transform, c.Method.Declaring)
	assert.Equal(t, symbols.Float64, c.Type())
	assert.Equal(t, "f.Invoke((float64)2)", c.String())

	c = requireCall(t)(TryBindInvocation(call("Scale", lit(2.5)), fx.ctx, nil))
	access, ok := c.Receiver.(*bound.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "Scale", access.Member.Name)
	assert.Equal(t, "calc.Scale.Invoke(2.5)", c.String())

	_, err := TryBindInvocation(call("f", lit("x")), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorNoApplicableOverload)
}

func TestGlobalReceiver(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindMethodCall(call("G", lit(1)), fx.ctx, nil))
	assert.Equal(t, fx.ctx.Global, c.Receiver)

	// Target-less property loads also go through the global receiver.
	expr, err := Bind(ref("Total"), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "calc.Total", expr.String())

	// The global receiver is an instance; static members need their type.
	_, err = TryBindMethodCall(call("Max", lit(1), lit(2)), fx.ctx, nil)
	be := assertBindingError(t, err, errors.ErrorMemberNotFound)
	assert.Contains(t, be.Message(), "is static")

	bare := NewContext(types.NewCatalog(), fx.universe)
	_, err = TryBindInvocation(call("G", lit(1)), bare, nil)
	assertBindingError(t, err, errors.ErrorNameNotResolved)
	_, err = Bind(ref("Total"), bare, nil)
	assertBindingError(t, err, errors.ErrorNameNotResolved)
}

func TestStaticMembers(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(ast.NewInvoke(member(ref("Calc"), "Max"), lit(1), lit(2)), fx.ctx, nil))
	assert.Nil(t, c.Receiver)
	assert.True(t, c.Method.Static)

	origin := member(member(ref("Geometry"), "Point"), "Origin")
	expr, err := Bind(origin, fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, fx.point, expr.Type())
	assert.Equal(t, "Geometry.Point.Origin", expr.String())

	dist := ast.NewInvoke(member(member(ref("Geometry"), "Point"), "Distance"), ref("p"), origin)
	c = requireCall(t)(TryBindInvocation(dist, fx.ctx, nil))
	assert.Equal(t, "Geometry.Point.Distance(p, Geometry.Point.Origin)", c.String())

	// A call node with an explicit type receiver.
	c = requireCall(t)(Bind(ast.NewCall(ref("Calc"), "Max", lit(3), lit(4)), fx.ctx, nil))
	assert.Equal(t, "Calc.Max(3, 4)", c.String())
}

func TestInheritedMembers(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	expr, err := Bind(member(ref("p"), "Name"), fx.ctx, nil)
	require.NoError(t, err)
	access := expr.(*bound.MemberAccess)
	assert.Equal(t, fx.shape, access.Member.Declaring)

	c := requireCall(t)(TryBindInvocation(ast.NewInvoke(member(ref("p"), "Area")), fx.ctx, nil))
	assert.Equal(t, fx.point, c.Method.Declaring)

	c = requireCall(t)(TryBindInvocation(ast.NewInvoke(member(ref("p"), "ToString")), fx.ctx, nil))
	assert.Equal(t, symbols.Object, c.Method.Declaring)
}

func TestMoreSpecificParameterWins(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("Describe", ref("p")), fx.ctx, nil))
	assert.Equal(t, fx.shape, c.Method.Parameters[0].Type)
	conv := c.Arguments[0].(*bound.Convert)
	assert.Equal(t, bound.ReferenceConversion, conv.Kind)

	c = requireCall(t)(TryBindInvocation(call("Describe", lit("s")), fx.ctx, nil))
	assert.Equal(t, symbols.Object, c.Method.Parameters[0].Type)
}

func TestNullArguments(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("Describe", lit(nil)), fx.ctx, nil))
	assert.Equal(t, fx.shape, c.Method.Parameters[0].Type)
	assert.Equal(t, bound.NullConversion, c.Arguments[0].(*bound.Convert).Kind)

	c = requireCall(t)(TryBindInvocation(call("Check", lit(nil)), fx.ctx, nil))
	assert.Equal(t, symbols.NewNullableType(symbols.Int32), c.Arguments[0].Type())

	_, err := TryBindInvocation(call("G", lit(nil)), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorNoApplicableOverload)
}

func TestOperatorConversions(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("G", ref("m")), fx.ctx, nil))
	conv := c.Arguments[0].(*bound.Convert)
	assert.Equal(t, bound.OperatorConversion, conv.Kind)
	assert.True(t, conv.Operator.Implicit)
	assert.Equal(t, "calc.G(Meters.op_Implicit(m))", c.String())

	expr, err := Bind(ast.NewConvert(lit(2.5), "Meters"), fx.ctx, nil)
	require.NoError(t, err)
	conv = expr.(*bound.Convert)
	assert.Equal(t, bound.OperatorConversion, conv.Kind)
	assert.False(t, conv.Operator.Implicit)
	assert.Equal(t, fx.meters, conv.Type())
}

func TestEnumInPlaceArguments(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("Paint", ref("c")), fx.ctx, nil))
	_, isParam := c.Arguments[0].(*bound.Parameter)
	assert.True(t, isParam)

	c = requireCall(t)(TryBindInvocation(call("Paint", lit(1)), fx.ctx, nil))
	assert.Equal(t, bound.InPlaceConversion, c.Arguments[0].(*bound.Convert).Kind)
}

func TestOptionalAndVariadicParameters(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("Opt", lit(1)), fx.ctx, nil))
	require.Len(t, c.Arguments, 2)
	assert.Equal(t, "calc.Opt(1, 10)", c.String())
	assert.Equal(t, int32(10), c.Arguments[1].(*bound.Constant).Value)

	c = requireCall(t)(TryBindInvocation(call("Opt", lit(1), ast.NewDefault("")), fx.ctx, nil))
	assert.Equal(t, "calc.Opt(1, default(int32))", c.String())

	c = requireCall(t)(TryBindInvocation(call("Sum", lit("a")), fx.ctx, nil))
	assert.Equal(t, `calc.Sum("a", new int32[]{})`, c.String())

	c = requireCall(t)(TryBindInvocation(call("Sum", lit("a"), lit(1), lit(2), lit(3)), fx.ctx, nil))
	assert.Equal(t, `calc.Sum("a", new int32[]{1, 2, 3})`, c.String())

	c = requireCall(t)(TryBindInvocation(call("Sum", lit("a"), ref("arr")), fx.ctx, nil))
	assert.Equal(t, `calc.Sum("a", arr)`, c.String())

	c = requireCall(t)(TryBindInvocation(
		ast.NewInvoke(member(ref("String"), "Join"), lit(","), lit(1), lit("x")), fx.ctx, nil))
	assert.Equal(t, `string.Join(",", new object[]{(object)1, (object)"x"})`, c.String())

	_, err := TryBindInvocation(call("Opt"), fx.ctx, nil)
	be := assertBindingError(t, err, errors.ErrorNoApplicableOverload)
	assert.Contains(t, be.Error(), "'Opt' expects 1 to 2 argument(s); got 0 instead")

	_, err = TryBindInvocation(call("G", lit(1), lit(2)), fx.ctx, nil)
	be = assertBindingError(t, err, errors.ErrorNoApplicableOverload)
	assert.Contains(t, be.Error(), "'G' expects 1 argument(s); got 2 instead")
}

func TestAmbiguousCall(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := TryBindInvocation(call("H", lit(1), lit(2)), fx.ctx, nil)
	be := assertBindingError(t, err, errors.ErrorAmbiguousCall)
	assert.Contains(t, be.Message(), "Calc.H(a int64, b int32)")
	assert.Contains(t, be.Message(), "Calc.H(a int32, b int64)")

	// An exact match resolves the ambiguity.
	c := requireCall(t)(TryBindInvocation(call("H", lit(int64(1)), lit(2)), fx.ctx, nil))
	assert.Equal(t, symbols.Int64, c.Method.Parameters[0].Type)
}

func TestExplicitArgumentFallback(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(call("N", lit(1)), fx.ctx, nil))
	conv := c.Arguments[0].(*bound.Convert)
	assert.Equal(t, bound.NumericConversion, conv.Kind)
	assert.Equal(t, symbols.Int8, conv.Type())

	fx.ctx.Options.DisallowExplicitArguments = true
	_, err := TryBindInvocation(call("N", lit(1)), fx.ctx, nil)
	be := assertBindingError(t, err, errors.ErrorNoApplicableOverload)
	assert.Contains(t, be.Error(), "explicit conversion")
}

func TestArgumentErrorsSurface(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := TryBindInvocation(call("F", ref("nope")), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorNameNotResolved)

	// Malformed arguments are never absorbed by overload resolution.
	_, err = TryBindInvocation(call("F", ast.NewGroup(nil)), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMalformedNode)

	// Nested calls bind through the same machinery.
	c := requireCall(t)(TryBindInvocation(call("G", call("F", lit(1))), fx.ctx, nil))
	assert.Equal(t, "calc.G((float64)calc.F(1))", c.String())
}

func TestTryBindMethodCall(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := TryBindMethodCall(ast.NewInvoke(lit(1)), fx.ctx, nil)
	assert.Equal(t, ErrNotMethodCall, err)

	// Parameters shadow global members, so invoking one is not a method call.
	_, err = TryBindMethodCall(call("f", lit(1)), fx.ctx, nil)
	assert.Equal(t, ErrNotMethodCall, err)

	_, err = TryBindMethodCall(ast.NewInvoke(nil), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMalformedNode)
}

func TestInstanceCallsOnValues(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	c := requireCall(t)(TryBindInvocation(ast.NewInvoke(member(lit("abc"), "Substring"), lit(1)), fx.ctx, nil))
	assert.Equal(t, `"abc".Substring(1)`, c.String())

	c = requireCall(t)(TryBindInvocation(
		ast.NewInvoke(member(ref("String"), "Concat"), lit(1), lit("a")), fx.ctx, nil))
	assert.Equal(t, symbols.Object, c.Method.Parameters[0].Type)

	c = requireCall(t)(TryBindInvocation(
		ast.NewInvoke(member(ref("String"), "Concat"), lit("a"), lit("b")), fx.ctx, nil))
	assert.Equal(t, symbols.String, c.Method.Parameters[0].Type)
}

func TestNullPropagation(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	x := member(ref("p"), "X")
	x.UseNullPropagation = true
	expr, err := Bind(x, fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, symbols.NewNullableType(symbols.Float64), expr.Type())
	assert.Equal(t, "p?.X", expr.String())

	area := member(ref("p"), "Area")
	area.UseNullPropagation = true
	c := requireCall(t)(TryBindInvocation(ast.NewInvoke(area), fx.ctx, nil))
	assert.True(t, c.NullPropagation)
	assert.Equal(t, symbols.NewNullableType(symbols.Float64), c.Type())
}

func TestConstants(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	tests := []struct {
		node   *ast.ConstantExpression
		typ    *symbols.Type
		value  interface{}
		failID diag.ID
	}{
		{lit(1), symbols.Int32, int32(1), 0},
		{lit(3000000000), symbols.Int64, int64(3000000000), 0},
		{lit(true), symbols.Bool, true, 0},
		{lit(2.5), symbols.Float64, 2.5, 0},
		{ast.NewConstant("12", "long"), symbols.Int64, int64(12), 0},
		{ast.NewConstant(3, "double"), symbols.Float64, float64(3), 0},
		{ast.NewConstant("x", "char"), symbols.Char, 'x', 0},
		{ast.NewConstant(2, "Color"), fx.color, int32(2), 0},
		{ast.NewConstant(300, "int8"), nil, nil, errors.ErrorIllegalConstant.ID},
		{ast.NewConstant(1.5, "int32"), nil, nil, errors.ErrorIllegalConstant.ID},
		{ast.NewConstant(nil, "int32"), nil, nil, errors.ErrorIllegalConstant.ID},
		{ast.NewConstant(1, "Missing"), nil, nil, errors.ErrorTypeNotFound.ID},
	}
	for _, test := range tests {
		expr, err := Bind(test.node, fx.ctx, nil)
		if test.failID != 0 {
			be, ok := errors.AsBindingError(err)
			if assert.True(t, ok, ast.Format(test.node)) {
				assert.Equal(t, test.failID, be.ID(), ast.Format(test.node))
			}
			continue
		}
		if assert.NoError(t, err, ast.Format(test.node)) {
			c := expr.(*bound.Constant)
			assert.Equal(t, test.typ, c.Type(), ast.Format(test.node))
			assert.Equal(t, test.value, c.Value, ast.Format(test.node))
		}
	}

	// A typed null is the null literal converted to that type.
	expr, err := Bind(ast.NewConstant(nil, "string"), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, symbols.String, expr.Type())
	assert.Equal(t, bound.NullConversion, expr.(*bound.Convert).Kind)
}

func TestConvertExpressions(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	expr, err := Bind(ast.NewConvert(ref("n"), "int8"), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, bound.NumericConversion, expr.(*bound.Convert).Kind)
	assert.Equal(t, "(int8)n", expr.String())

	expr, err = Bind(ast.NewConvert(ref("p"), "object"), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, bound.ReferenceConversion, expr.(*bound.Convert).Kind)

	expr, err = Bind(ast.NewConvert(ref("n"), "int32"), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "n", expr.String())

	checked := ast.NewConvert(ref("n"), "uint8")
	checked.Kind = ast.ConvertCheckedKind
	expr, err = Bind(checked, fx.ctx, nil)
	require.NoError(t, err)
	assert.True(t, expr.(*bound.Convert).Checked)

	_, err = Bind(ast.NewConvert(ref("n"), "string"), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorInvalidCast)
}

func TestDefaultTypeOfAndGroups(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	expr, err := Bind(ast.NewDefault("Geometry.Point"), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, fx.point, expr.Type())

	expr, err = Bind(ast.NewTypeOf("Geometry.Point"), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, symbols.TypeInfo, expr.Type())
	assert.Equal(t, "typeof(Geometry.Point)", expr.String())

	expr, err = Bind(ast.NewInvoke(member(ast.NewGroup(ref("p")), "Area")), fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "p.Area()", expr.String())

	_, err = Bind(ast.NewDefault(""), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMalformedNode)

	_, err = Bind(ast.NewTypeOf("Nope"), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorTypeNotFound)
}

func TestExpectedType(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	expr, err := TryBindInvocation(call("F", lit(1)), fx.ctx, symbols.Float64)
	require.NoError(t, err)
	assert.Equal(t, symbols.Float64, expr.Type())
	assert.Equal(t, "(float64)calc.F(1)", expr.String())

	expr, err = Bind(ast.NewDefault(""), fx.ctx, symbols.Int64)
	require.NoError(t, err)
	assert.Equal(t, "default(int64)", expr.String())

	_, err = Bind(lit("s"), fx.ctx, symbols.Int32)
	assertBindingError(t, err, errors.ErrorIncorrectExprType)
}

func TestMalformedNodes(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := Bind(nil, fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMalformedNode)
	_, err = Bind(ref(""), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMalformedNode)
	_, err = Bind(&ast.CallExpression{NodeValue: ast.NodeValue{Kind: ast.CallKind}, Expression: ref("p")}, fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMalformedNode)
	_, err = Bind(ast.NewConvert(nil, "int32"), fx.ctx, nil)
	assertBindingError(t, err, errors.ErrorMalformedNode)
}

func TestBindingIsRepeatable(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	node := call("Describe", ref("p"))
	first, err := TryBindInvocation(node, fx.ctx, nil)
	require.NoError(t, err)
	second, err := TryBindInvocation(node, fx.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
	assert.False(t, first == second)
	assert.Equal(t, "Describe", node.Expression.(*ast.PropertyOrFieldExpression).Name)
	assert.Len(t, node.Arguments, 1)
}
