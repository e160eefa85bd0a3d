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

// Package bound contains the strongly typed expression trees produced by binding.  Every node has a static type;
// bound trees are freshly constructed per bind and never shared.
package bound

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
)

// Expression is a bound, executable expression with a static result type.
type Expression interface {
	Type() *symbols.Type // the static type of the value the expression produces.
	Syntax() ast.Node    // the syntax node the expression was bound from, if any.
	String() string      // a compact rendering, used for diagnostics and by the CLI.
	expr()
}

type exprNode struct {
	Node ast.Node
}

func (e *exprNode) Syntax() ast.Node { return e.Node }
func (e *exprNode) expr()            {}

// Constant is a literal value.
type Constant struct {
	exprNode
	Typ   *symbols.Type
	Value interface{}
}

var _ Expression = (*Constant)(nil)

func NewConstant(node ast.Node, t *symbols.Type, value interface{}) *Constant {
	return &Constant{exprNode{node}, t, value}
}

func (e *Constant) Type() *symbols.Type { return e.Typ }

func (e *Constant) String() string {
	switch v := e.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case rune:
		if e.Typ == symbols.Char {
			return strconv.QuoteRune(v)
		}
	}
	return fmt.Sprintf("%v", e.Value)
}

// Parameter is a named value supplied by the binding context, including the implicit global receiver.
type Parameter struct {
	exprNode
	Name string
	Typ  *symbols.Type
}

var _ Expression = (*Parameter)(nil)

func NewParameter(node ast.Node, name string, t *symbols.Type) *Parameter {
	return &Parameter{exprNode{node}, name, t}
}

func (e *Parameter) Type() *symbols.Type { return e.Typ }
func (e *Parameter) String() string      { return e.Name }

// TypeReference names a type as the receiver of a static member access.  It produces no value of its own.
type TypeReference struct {
	exprNode
	Referent *symbols.Type
}

var _ Expression = (*TypeReference)(nil)

func NewTypeReference(node ast.Node, t *symbols.Type) *TypeReference {
	return &TypeReference{exprNode{node}, t}
}

func (e *TypeReference) Type() *symbols.Type { return e.Referent }
func (e *TypeReference) String() string      { return e.Referent.Name() }

// MemberAccess loads a property or field.  Receiver is nil for static members.
type MemberAccess struct {
	exprNode
	Receiver        Expression
	Member          *symbols.Member
	NullPropagation bool
}

var _ Expression = (*MemberAccess)(nil)

func NewMemberAccess(node ast.Node, receiver Expression, m *symbols.Member, nullProp bool) *MemberAccess {
	return &MemberAccess{exprNode{node}, receiver, m, nullProp}
}

func (e *MemberAccess) Type() *symbols.Type { return liftedType(e.Member.Result, e.NullPropagation) }

func (e *MemberAccess) String() string {
	return receiverPrefix(e.Receiver, e.Member, e.NullPropagation) + e.Member.Name
}

// Call invokes a method.  Receiver is nil for static methods.  Arguments are already converted to the parameter
// types, with omitted optional arguments filled in and variadic arguments packed.
type Call struct {
	exprNode
	Receiver        Expression
	Method          *symbols.Member
	Arguments       []Expression
	NullPropagation bool
}

var _ Expression = (*Call)(nil)

func NewCall(node ast.Node, receiver Expression, m *symbols.Member, args []Expression, nullProp bool) *Call {
	return &Call{exprNode{node}, receiver, m, args, nullProp}
}

func (e *Call) Type() *symbols.Type { return liftedType(e.Method.Result, e.NullPropagation) }

func (e *Call) String() string {
	var buf bytes.Buffer
	buf.WriteString(receiverPrefix(e.Receiver, e.Method, e.NullPropagation))
	buf.WriteString(e.Method.Name)
	writeList(&buf, "(", e.Arguments, ")")
	return buf.String()
}

// ConversionKind classifies how a Convert node changes its operand's type.
type ConversionKind int

const (
	NumericConversion   ConversionKind = iota // a built-in numeric widening or narrowing.
	ReferenceConversion                       // an upcast to a base type or interface.
	InPlaceConversion                         // a reinterpretation between an enum or nullable and its underlying type.
	OperatorConversion                        // a call to a user-defined conversion operator.
	NullConversion                            // the null literal taking on a reference or nullable type.
	ExplicitConversion                        // any other conversion that requires a cast.
)

func (k ConversionKind) String() string {
	switch k {
	case NumericConversion:
		return "numeric"
	case ReferenceConversion:
		return "reference"
	case InPlaceConversion:
		return "in-place"
	case OperatorConversion:
		return "operator"
	case NullConversion:
		return "null"
	case ExplicitConversion:
		return "explicit"
	default:
		return "unknown"
	}
}

// Convert changes the type of its operand.  Operator is set for user-defined conversions.
type Convert struct {
	exprNode
	Operand  Expression
	Kind     ConversionKind
	Operator *symbols.Member
	Typ      *symbols.Type
	Checked  bool
}

var _ Expression = (*Convert)(nil)

func NewConvert(node ast.Node, operand Expression, kind ConversionKind, op *symbols.Member,
	t *symbols.Type) *Convert {
	return &Convert{exprNode: exprNode{node}, Operand: operand, Kind: kind, Operator: op, Typ: t}
}

func (e *Convert) Type() *symbols.Type { return e.Typ }

func (e *Convert) String() string {
	if e.Kind == OperatorConversion && e.Operator != nil {
		return fmt.Sprintf("%v.%v(%v)", e.Operator.Declaring, e.Operator.Name, e.Operand)
	}
	return fmt.Sprintf("(%v)%v", e.Typ, e.Operand)
}

// Default produces the default value of a type: null for references, zero for values.
type Default struct {
	exprNode
	Typ *symbols.Type
}

var _ Expression = (*Default)(nil)

func NewDefault(node ast.Node, t *symbols.Type) *Default {
	return &Default{exprNode{node}, t}
}

func (e *Default) Type() *symbols.Type { return e.Typ }
func (e *Default) String() string      { return fmt.Sprintf("default(%v)", e.Typ) }

// NewArray creates an array from a list of elements; binders use it to pack variadic arguments.
type NewArray struct {
	exprNode
	Element  *symbols.Type
	Elements []Expression
}

var _ Expression = (*NewArray)(nil)

func NewNewArray(node ast.Node, elem *symbols.Type, elems []Expression) *NewArray {
	return &NewArray{exprNode{node}, elem, elems}
}

func (e *NewArray) Type() *symbols.Type { return symbols.NewArrayType(e.Element) }

func (e *NewArray) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "new %v[]", e.Element)
	writeList(&buf, "{", e.Elements, "}")
	return buf.String()
}

// TypeOf produces the runtime descriptor of a type.
type TypeOf struct {
	exprNode
	Operand *symbols.Type
}

var _ Expression = (*TypeOf)(nil)

func NewTypeOf(node ast.Node, t *symbols.Type) *TypeOf {
	return &TypeOf{exprNode{node}, t}
}

func (e *TypeOf) Type() *symbols.Type { return symbols.TypeInfo }
func (e *TypeOf) String() string      { return fmt.Sprintf("typeof(%v)", e.Operand) }

// liftedType is the type of a member access or call: with null propagation, value results become nullable since
// the receiver may be null.
func liftedType(t *symbols.Type, nullProp bool) *symbols.Type {
	if nullProp && t.IsValueType() && !t.IsNullable() {
		return symbols.NewNullableType(t)
	}
	return t
}

func receiverPrefix(receiver Expression, m *symbols.Member, nullProp bool) string {
	sep := "."
	if nullProp {
		sep = "?."
	}
	switch {
	case receiver != nil:
		return receiver.String() + sep
	case m.Declaring != nil:
		return m.Declaring.Name() + sep
	default:
		return ""
	}
}

func writeList(buf *bytes.Buffer, start string, exprs []Expression, end string) {
	buf.WriteString(start)
	for i, e := range exprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(e.String())
	}
	buf.WriteString(end)
}
