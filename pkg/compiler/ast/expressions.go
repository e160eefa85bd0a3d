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

package ast

// Expression kinds, named after the "expressionType" attribute values.
const (
	ConstantKind        NodeKind = "Constant"
	PropertyOrFieldKind NodeKind = "PropertyOrField"
	InvokeKind          NodeKind = "Invoke"
	CallKind            NodeKind = "Call"
	ConvertKind         NodeKind = "Convert"
	ConvertCheckedKind  NodeKind = "ConvertChecked"
	GroupKind           NodeKind = "Group"
	DefaultKind         NodeKind = "Default"
	TypeOfKind          NodeKind = "TypeOf"
)

// ConstantExpression is a literal value with an optional textual type reference.
type ConstantExpression struct {
	NodeValue
	Type  string      // the optional type reference; if empty, the type is inferred from the value.
	Value interface{} // the literal value; nil denotes the null literal.
}

var _ Node = (*ConstantExpression)(nil)

// PropertyOrFieldExpression loads a property or field.  With no target it refers to an ambient name.
type PropertyOrFieldExpression struct {
	NodeValue
	Expression         Node   // the optional target.
	Name               string // the member name.
	UseNullPropagation bool   // true for `?.` accesses.
}

var _ Node = (*PropertyOrFieldExpression)(nil)

// InvokeExpression is any call-shaped expression: `callee(args...)`.
type InvokeExpression struct {
	NodeValue
	Expression         Node   // the callee; required.
	Arguments          []Node // the ordered arguments.
	UseNullPropagation bool
}

var _ Node = (*InvokeExpression)(nil)

// MethodReference names the method a call node refers to.
type MethodReference struct {
	Name string
}

func (ref *MethodReference) String() string { return ref.Name }

// CallExpression is a call with an explicit receiver and method name.  The receiver may denote a type, in which case
// the call is static.  Binders synthesize these from invoke expressions, and they may also appear in input trees.
type CallExpression struct {
	NodeValue
	Expression         Node             // the receiver; required.
	Method             *MethodReference // the method to call; required.
	Arguments          []Node           // the ordered arguments.
	UseNullPropagation bool
}

var _ Node = (*CallExpression)(nil)

// ConvertExpression is an explicit conversion: `(T)expr`.
type ConvertExpression struct {
	NodeValue
	Expression Node   // the operand; required.
	Type       string // the target type reference; required.
}

var _ Node = (*ConvertExpression)(nil)

// GroupExpression is a parenthesized expression.
type GroupExpression struct {
	NodeValue
	Expression Node
}

var _ Node = (*GroupExpression)(nil)

// DefaultExpression is `default(T)`; with no type it takes the expected type of its context.
type DefaultExpression struct {
	NodeValue
	Type string
}

var _ Node = (*DefaultExpression)(nil)

// TypeOfExpression is `typeof(T)`.
type TypeOfExpression struct {
	NodeValue
	Type string
}

var _ Node = (*TypeOfExpression)(nil)

// NewConstant returns a constant node; typ may be empty.
func NewConstant(value interface{}, typ string) *ConstantExpression {
	return &ConstantExpression{NodeValue: NodeValue{Kind: ConstantKind}, Type: typ, Value: value}
}

// NewPropertyOrField returns a member access node; target may be nil.
func NewPropertyOrField(target Node, name string) *PropertyOrFieldExpression {
	return &PropertyOrFieldExpression{NodeValue: NodeValue{Kind: PropertyOrFieldKind}, Expression: target, Name: name}
}

// NewInvoke returns an invoke node for the given callee and arguments.
func NewInvoke(callee Node, args ...Node) *InvokeExpression {
	return &InvokeExpression{NodeValue: NodeValue{Kind: InvokeKind}, Expression: callee, Arguments: args}
}

// NewConvert returns an explicit conversion node.
func NewConvert(operand Node, typ string) *ConvertExpression {
	return &ConvertExpression{NodeValue: NodeValue{Kind: ConvertKind}, Expression: operand, Type: typ}
}

// NewCall returns a call node for the given receiver, method name, and arguments.
func NewCall(receiver Node, method string, args ...Node) *CallExpression {
	return &CallExpression{
		NodeValue:  NodeValue{Kind: CallKind},
		Expression: receiver,
		Method:     &MethodReference{Name: method},
		Arguments:  args,
	}
}

func NewGroup(inner Node) *GroupExpression {
	return &GroupExpression{NodeValue: NodeValue{Kind: GroupKind}, Expression: inner}
}

func NewDefault(typ string) *DefaultExpression {
	return &DefaultExpression{NodeValue: NodeValue{Kind: DefaultKind}, Type: typ}
}

func NewTypeOf(typ string) *TypeOfExpression {
	return &TypeOfExpression{NodeValue: NodeValue{Kind: TypeOfKind}, Type: typ}
}

// ToCall returns a new call node that calls the given method on the given receiver with this node's arguments.
// The null-propagation flag and the source location are carried through; the invoke node itself is not modified.
func (node *InvokeExpression) ToCall(receiver Node, method string) *CallExpression {
	var args []Node
	if len(node.Arguments) > 0 {
		args = make([]Node, len(node.Arguments))
		copy(args, node.Arguments)
	}
	return &CallExpression{
		NodeValue:          NodeValue{Kind: CallKind, Loc: node.Loc},
		Expression:         receiver,
		Method:             &MethodReference{Name: method},
		Arguments:          args,
		UseNullPropagation: node.UseNullPropagation,
	}
}
