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

package bound

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
)

func TestExpressionTypesAndStrings(t *testing.T) {
	t.Parallel()

	point := symbols.NewClassType("Point", nil)
	x := point.AddMember(symbols.NewProperty("X", false, symbols.Float64))
	scale := point.AddMember(symbols.NewMethod("Scale", false, point, symbols.NewParameter("f", symbols.Float64)))
	origin := point.AddMember(symbols.NewField("Origin", true, point))
	toStr := point.AddMember(symbols.NewConversion(true, point, symbols.String))

	p := NewParameter(nil, "p", point)
	access := NewMemberAccess(nil, p, x, false)
	assert.Equal(t, symbols.Float64, access.Type())
	assert.Equal(t, "p.X", access.String())

	lifted := NewMemberAccess(nil, p, x, true)
	assert.Equal(t, symbols.NewNullableType(symbols.Float64), lifted.Type())
	assert.Equal(t, "p?.X", lifted.String())

	static := NewMemberAccess(nil, nil, origin, false)
	assert.Equal(t, "Point.Origin", static.String())

	arg := NewConvert(nil, NewConstant(nil, symbols.Int32, int32(2)), NumericConversion, nil, symbols.Float64)
	call := NewCall(nil, p, scale, []Expression{arg}, false)
	assert.Equal(t, point, call.Type())
	assert.Equal(t, "p.Scale((float64)2)", call.String())

	op := NewConvert(nil, p, OperatorConversion, toStr, symbols.String)
	assert.Equal(t, "Point.op_Implicit(p)", op.String())
	assert.Equal(t, "operator", op.Kind.String())

	arr := NewNewArray(nil, symbols.Object, []Expression{
		NewConstant(nil, symbols.String, "a"), NewConstant(nil, symbols.Null, nil)})
	assert.Equal(t, symbols.NewArrayType(symbols.Object), arr.Type())
	assert.Equal(t, `new object[]{"a", null}`, arr.String())

	assert.Equal(t, "'x'", NewConstant(nil, symbols.Char, 'x').String())
	assert.Equal(t, "120", NewConstant(nil, symbols.Int32, int32('x')).String())
	assert.Equal(t, "default(int32)", NewDefault(nil, symbols.Int32).String())
	assert.Equal(t, symbols.TypeInfo, NewTypeOf(nil, point).Type())
	assert.Equal(t, "typeof(Point)", NewTypeOf(nil, point).String())
	assert.Equal(t, point, NewTypeReference(nil, point).Type())
	assert.Nil(t, p.Syntax())
}
