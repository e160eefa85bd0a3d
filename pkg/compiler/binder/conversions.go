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
	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/bound"
	"github.com/pulumi/dynexpr/pkg/compiler/errors"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/compiler/types"
)

// conversionKind decides how a catalog entry is carried out.  Natural rules win over user-defined operators attached
// to the same pair.
func conversionKind(from *symbols.Type, to *symbols.Type, conv types.Conversion) (bound.ConversionKind, *symbols.Member) {
	switch {
	case from == symbols.Null:
		return bound.NullConversion, nil
	case conv.Natural && (from.UnderlyingType() == to || to.UnderlyingType() == from):
		return bound.InPlaceConversion, nil
	case conv.Natural && symbols.IsNumeric(from) && symbols.IsNumeric(to):
		return bound.NumericConversion, nil
	case conv.Natural && from.DerivesFrom(to):
		return bound.ReferenceConversion, nil
	case conv.Operator() != nil:
		return bound.OperatorConversion, conv.Operator()
	default:
		return bound.ExplicitConversion, nil
	}
}

// convert wraps expr in the conversion to t that conv describes.  Identity conversions return expr itself.
func convert(expr bound.Expression, t *symbols.Type, conv types.Conversion) bound.Expression {
	from := expr.Type()
	if from == t {
		return expr
	}
	kind, op := conversionKind(from, t, conv)
	return bound.NewConvert(expr.Syntax(), expr, kind, op, t)
}

// coerce implicitly converts a bound expression to the expected type, if there is one.
func coerce(ctx *Context, node ast.Node, expr bound.Expression, expected *symbols.Type) (bound.Expression, error) {
	if expected == nil || expr.Type() == expected {
		return expr, nil
	}
	if conv, ok := ctx.Catalog.Resolve(expr.Type(), expected); ok && conv.IsImplicit() {
		return convert(expr, expected, conv), nil
	}
	return nil, errors.New(errors.ErrorIncorrectExprType, node, expected, expr.Type())
}
